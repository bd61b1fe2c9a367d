package chat

import (
	"encoding/json"
	"strings"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Reply 助理一次回覆的結構化內容
type Reply struct {
	Message   string          `json:"message"`
	Completed bool            `json:"completed"`
	Data      json.RawMessage `json:"data"`
}

// HasData 是否附帶結構化資料
func (r Reply) HasData() bool {
	d := strings.TrimSpace(string(r.Data))
	return d != "" && d != "null" && d != "{}"
}

// ParseReply 解析助理回覆；不是約定的 JSON 時改用完成標記判斷並移除標記
func ParseReply(content string, markers ...string) Reply {
	if text, ok := common.ExtractJSONObject(content); ok {
		var r Reply
		if err := common.ParseJSON(text, &r); err == nil && strings.TrimSpace(r.Message) != "" {
			if !r.Completed {
				if m, ok := containsMarker(r.Message, markers); ok {
					common.LogWarn("回覆含完成標記但 completed 為 false，以 completed 為準",
						zap.String("marker", m),
					)
				}
			}
			r.Message = stripMarkers(r.Message, markers)
			return r
		}
	}

	r := Reply{Message: content}
	_, r.Completed = containsMarker(content, markers)
	r.Message = stripMarkers(content, markers)
	return r
}

func containsMarker(s string, markers []string) (string, bool) {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return m, true
		}
	}
	return "", false
}

func stripMarkers(s string, markers []string) string {
	for _, m := range markers {
		s = strings.ReplaceAll(s, m, "")
	}
	return strings.TrimSpace(s)
}
