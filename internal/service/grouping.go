package service

import "github.com/maheshrc27/contentflow/internal/models"

type DateGroup struct {
	Date  string                 `json:"date"`
	Items []*models.CalendarItem `json:"items"`
}

// GroupByDate partitions items by their literal date. Groups appear in the order their
// date is first seen and items keep their input order.
func GroupByDate(items []*models.CalendarItem) []DateGroup {
	index := make(map[string]int)
	var groups []DateGroup
	for _, item := range items {
		i, ok := index[item.Date]
		if !ok {
			i = len(groups)
			index[item.Date] = i
			groups = append(groups, DateGroup{Date: item.Date})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
