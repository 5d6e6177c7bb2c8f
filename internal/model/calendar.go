package model

import "time"

// DayTheme styles a single calendar door
type DayTheme struct {
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
	BorderColor     string `json:"borderColor" yaml:"borderColor"`
	Icon            string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Image           string `json:"image,omitempty" yaml:"image,omitempty"`
}

// CalendarDay is one door of the calendar. Day is 1-based and unique.
type CalendarDay struct {
	Day         int         `json:"day"`
	Date        time.Time   `json:"date"`
	IsUnlocked  bool        `json:"isUnlocked"`
	IsCompleted bool        `json:"isCompleted"`
	Task        *TaskRecord `json:"task,omitempty"`
	Theme       *DayTheme   `json:"theme,omitempty"`
}
