package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

// IsProduction controls whether sensitive values are masked in logs.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production" ||
	os.Getenv("ENV") == "production"

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	amountRegex = regexp.MustCompile(`\b\d{2,}([.,]\d{1,2})?\b`)
	uuidRegex   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks emails, amounts and UUIDs in production logs.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})
	result = amountRegex.ReplaceAllString(result, "***")
	return result
}

// MaskID shortens an identifier in production logs.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// MaskEmail masks an email address in production logs.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// SafeLog logs a formatted message with sensitive data masked.
func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

// LogAuthAction logs an authentication event without exposing the email in
// production.
func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}

// LogBudgetAction logs a budget synchronization event.
func LogBudgetAction(action, budgetID, userID string) {
	log.Printf("[Budget] %s - Budget: %s User: %s", action, MaskID(budgetID), MaskID(userID))
}

// LogReportAction logs a report pipeline event.
func LogReportAction(action, reportType, userID string) {
	log.Printf("[Report] %s - Type: %s User: %s", action, reportType, MaskID(userID))
}
