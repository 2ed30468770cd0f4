package services

import (
	"fmt"
	"sort"
	"strings"

	"robot-order-bot/models"
	"robot-order-bot/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Generate(results []*models.OrderResult) *models.RunReport {
	report := &models.RunReport{
		OrdersByHead: make(map[string]int),
	}

	if len(results) == 0 {
		return report
	}

	report.TotalOrders = len(results)

	for _, r := range results {
		report.TotalAttempts += r.Attempts
		if r.Attempts > 1 {
			report.Retried++
		}
		switch r.Status {
		case models.StatusCompleted:
			report.Completed++
			if r.Head != "" {
				report.OrdersByHead[r.Head]++
			}
		case models.StatusFailed:
			report.Failed++
			report.FailedNumbers = append(report.FailedNumbers, r.Number)
		}
	}

	return report
}

func (s *SummaryService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🤖 ROBOT ORDER RUN SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Orders processed : \033[1m%d\033[0m\n", r.TotalOrders)
	fmt.Printf("  Completed        : \033[1;32m%d\033[0m\n", r.Completed)
	fmt.Printf("  Failed           : \033[1;31m%d\033[0m\n", r.Failed)
	fmt.Println()

	// Submission effort
	fmt.Printf("\033[1;33m  Submission Attempts\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total attempts        : \033[1m%d\033[0m\n", r.TotalAttempts)
	fmt.Printf("  Orders needing retries: \033[1m%d\033[0m\n", r.Retried)
	if r.TotalOrders > 0 {
		avg := float64(r.TotalAttempts) / float64(r.TotalOrders)
		fmt.Printf("  Average attempts/order: \033[1m%.2f\033[0m\n", avg)
	}
	fmt.Println()

	// Failures
	if len(r.FailedNumbers) > 0 {
		fmt.Printf("\033[1;33m  Failed Orders\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", strings.Join(r.FailedNumbers, ", "))
		fmt.Println()
	}

	// Completed orders by head model
	fmt.Printf("\033[1;33m  Completed Orders by Head\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.OrdersByHead) == 0 {
		fmt.Printf("  No completed orders\n")
	} else {
		type headCount struct {
			head  string
			count int
		}
		var heads []headCount
		for h, cnt := range r.OrdersByHead {
			heads = append(heads, headCount{h, cnt})
		}
		sort.Slice(heads, func(i, j int) bool {
			if heads[i].count != heads[j].count {
				return heads[i].count > heads[j].count
			}
			return heads[i].head < heads[j].head
		})
		for _, hc := range heads {
			bar := strings.Repeat("█", hc.count)
			fmt.Printf("  %-24s %s (%d)\n", hc.head, bar, hc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
