package common

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NextMonday 回傳本週開始日：今天是週一就是今天，否則為下一個週一
func NextMonday(now time.Time) time.Time {
	offset := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	d := now.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// FlexString 接受 JSON 字串或數字，AI 回應常混用兩者
type FlexString string

// UnmarshalJSON 實作 json.Unmarshaler
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

// FlexInt 接受整數、小數或開頭為數字的字串（例如 "15 minutes"）
type FlexInt int

// UnmarshalJSON 實作 json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	text := strings.TrimSpace(string(s))
	end := 0
	for end < len(text) && (text[end] >= '0' && text[end] <= '9' || text[end] == '.') {
		end++
	}
	if end == 0 {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(text[:end], 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(v + 0.5))
	return nil
}
