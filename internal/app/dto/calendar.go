package dto

import (
	"campusrent/internal/domain/availability"
)

// CalendarEvent matches the shape FullCalendar expects: End is exclusive so
// the last occupied day is shaded.
type CalendarEvent struct {
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Color  string `json:"color"`
	AllDay bool   `json:"allDay"`
}

type Calendar struct {
	ProductID string          `json:"product_id"`
	Events    []CalendarEvent `json:"events"`
}

const (
	bookedTitle = "Booked"
	bookedColor = "#dc3545"
)

func MapCalendar(productID string, intervals []availability.Interval) Calendar {
	events := make([]CalendarEvent, 0, len(intervals))
	for _, interval := range intervals {
		events = append(events, CalendarEvent{
			Title:  bookedTitle,
			Start:  interval.Start.Format("2006-01-02"),
			End:    interval.EndExclusive.Format("2006-01-02"),
			Color:  bookedColor,
			AllDay: true,
		})
	}
	return Calendar{ProductID: productID, Events: events}
}
