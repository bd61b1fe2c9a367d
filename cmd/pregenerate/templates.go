package main

import "meal-planner/internal/core/recipe"

// seed 預先生成的食譜範本
type seed struct {
	Cuisine  string
	MealType string
	Protein  string
	Skill    string
	MaxTime  int
	Dietary  []string
}

func (s seed) requirements() recipe.Requirements {
	return recipe.Requirements{
		Cuisine:             s.Cuisine,
		MealType:            s.MealType,
		Protein:             s.Protein,
		SkillLevel:          s.Skill,
		MaxTime:             s.MaxTime,
		DietaryRestrictions: s.Dietary,
	}
}

var seeds = []seed{
	{Cuisine: "Italian", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Italian", MealType: "dinner", Protein: "beef", Skill: "intermediate"},
	{Cuisine: "Italian", MealType: "dinner", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Italian", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Italian", MealType: "dinner", Protein: "seafood", Skill: "advanced"},

	{Cuisine: "Mexican", MealType: "dinner", Protein: "chicken", Skill: "beginner"},
	{Cuisine: "Mexican", MealType: "dinner", Protein: "beef", Skill: "intermediate"},
	{Cuisine: "Mexican", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Mexican", MealType: "breakfast", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Mexican", MealType: "dinner", Protein: "pork", Skill: "intermediate"},

	{Cuisine: "Asian", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Asian", MealType: "dinner", Protein: "beef", Skill: "intermediate"},
	{Cuisine: "Asian", MealType: "dinner", Protein: "tofu", Skill: "beginner"},
	{Cuisine: "Asian", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Asian", MealType: "dinner", Protein: "seafood", Skill: "intermediate"},

	{Cuisine: "Chinese", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Chinese", MealType: "dinner", Protein: "pork", Skill: "intermediate"},
	{Cuisine: "Chinese", MealType: "dinner", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Chinese", MealType: "lunch", Protein: "tofu", Skill: "beginner"},

	{Cuisine: "Japanese", MealType: "dinner", Protein: "salmon", Skill: "intermediate"},
	{Cuisine: "Japanese", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Japanese", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},

	{Cuisine: "Thai", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Thai", MealType: "dinner", Protein: "shrimp", Skill: "intermediate"},
	{Cuisine: "Thai", MealType: "dinner", Protein: "vegetarian", Skill: "beginner"},

	{Cuisine: "American", MealType: "dinner", Protein: "beef", Skill: "beginner"},
	{Cuisine: "American", MealType: "dinner", Protein: "chicken", Skill: "beginner"},
	{Cuisine: "American", MealType: "breakfast", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "American", MealType: "lunch", Protein: "chicken", Skill: "beginner"},
	{Cuisine: "American", MealType: "dinner", Protein: "pork", Skill: "intermediate"},

	{Cuisine: "Mediterranean", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Mediterranean", MealType: "dinner", Protein: "lamb", Skill: "intermediate"},
	{Cuisine: "Mediterranean", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},
	{Cuisine: "Mediterranean", MealType: "dinner", Protein: "fish", Skill: "intermediate"},

	{Cuisine: "Indian", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Indian", MealType: "dinner", Protein: "vegetarian", Skill: "intermediate"},
	{Cuisine: "Indian", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},

	{Cuisine: "French", MealType: "dinner", Protein: "chicken", Skill: "advanced"},
	{Cuisine: "French", MealType: "dinner", Protein: "beef", Skill: "advanced"},

	{Cuisine: "Greek", MealType: "dinner", Protein: "lamb", Skill: "intermediate"},
	{Cuisine: "Greek", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},

	{Cuisine: "Middle Eastern", MealType: "dinner", Protein: "chicken", Skill: "intermediate"},
	{Cuisine: "Middle Eastern", MealType: "lunch", Protein: "vegetarian", Skill: "beginner"},

	// 飲食限制
	{Cuisine: "Italian", MealType: "dinner", Skill: "beginner", Dietary: []string{"vegetarian"}},
	{Cuisine: "Asian", MealType: "dinner", Skill: "beginner", Dietary: []string{"vegan"}},
	{Cuisine: "Mexican", MealType: "lunch", Skill: "beginner", Dietary: []string{"vegetarian"}},
	{Cuisine: "Mediterranean", MealType: "dinner", Skill: "intermediate", Dietary: []string{"vegetarian"}},

	// 快速料理
	{Cuisine: "Italian", MealType: "dinner", Protein: "chicken", Skill: "beginner", MaxTime: 25},
	{Cuisine: "Asian", MealType: "dinner", Protein: "chicken", Skill: "beginner", MaxTime: 25},
	{Cuisine: "American", MealType: "lunch", Protein: "chicken", Skill: "beginner", MaxTime: 20},
	{Cuisine: "Mexican", MealType: "dinner", Protein: "beef", Skill: "beginner", MaxTime: 25},

	// 早餐
	{Cuisine: "American", MealType: "breakfast", Protein: "eggs", Skill: "beginner"},
	{Cuisine: "French", MealType: "breakfast", Protein: "vegetarian", Skill: "intermediate"},
	{Cuisine: "Mexican", MealType: "breakfast", Protein: "eggs", Skill: "beginner"},
}
