package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors           int
	LoginSuccess          int
	LoginFailures         int
	Registrations         int
	RegistrationFailures  int
	GenerationsByModel    map[string]int
	ModelFailuresByClass  map[string]int
	ProviderRateLimits    int
	PaymentsVerified      int
	PaymentVerifyFailures int
	WebhooksRejected      int
	WebhookDuplicates     int
	ClientRateLimitHits   int
	UserActivities        map[string]int
	ErrorPatterns         map[string]int
}

type logEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

var (
	emailRegex   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	successRegex = regexp.MustCompile(`^Success with (\S+) model: (\S+)`)
	modelFailRe  = regexp.MustCompile(`\(class=([a-z_]+)`)
)

func newLogStats() *LogStats {
	return &LogStats{
		GenerationsByModel:   make(map[string]int),
		ModelFailuresByClass: make(map[string]int),
		UserActivities:       make(map[string]int),
		ErrorPatterns:        make(map[string]int),
	}
}

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the daily log files")
	date := flag.String("date", time.Now().Format("2006-01-02"), "day to analyze (YYYY-MM-DD)")
	flag.Parse()

	stats := newLogStats()
	for _, level := range []string{"error", "info"} {
		analyzeFile(filepath.Join(*logDir, fmt.Sprintf("%s-%s.log", level, *date)), stats)
	}

	printReport(stats)
}

func analyzeFile(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if entry, ok := parseLine(scanner.Text()); ok {
			analyzeEntry(entry, stats)
		}
	}
}

// parseLine decodes one JSON log line. Console output lines are skipped.
func parseLine(line string) (logEntry, bool) {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Message == "" {
		return logEntry{}, false
	}
	return entry, true
}

func analyzeEntry(entry logEntry, stats *LogStats) {
	msg := entry.Message

	if entry.Level == "error" {
		stats.TotalErrors++
		extractErrorPattern(msg, stats)
	}

	switch {
	case strings.Contains(msg, "User logged in successfully"):
		stats.LoginSuccess++
		extractUserActivity(msg, stats)
	case strings.Contains(msg, "Login attempt failed"):
		stats.LoginFailures++
		extractUserActivity(msg, stats)
	case strings.Contains(msg, "User registration completed successfully"):
		stats.Registrations++
		extractUserActivity(msg, stats)
	case strings.Contains(msg, "Registration attempt failed"):
		stats.RegistrationFailures++
	case strings.HasPrefix(msg, "Success with "):
		if m := successRegex.FindStringSubmatch(msg); m != nil {
			stats.GenerationsByModel[m[1]+"/"+m[2]]++
		}
	case strings.HasPrefix(msg, "Model ") && strings.Contains(msg, "(class="):
		if m := modelFailRe.FindStringSubmatch(msg); m != nil {
			stats.ModelFailuresByClass[m[1]]++
		}
	case strings.Contains(msg, "Rate limit hit for model"):
		stats.ProviderRateLimits++
	case strings.HasPrefix(msg, "Payment verified"):
		stats.PaymentsVerified++
	case strings.Contains(msg, "Payment verification failed"):
		stats.PaymentVerifyFailures++
	case strings.HasPrefix(msg, "Webhook rejected"):
		stats.WebhooksRejected++
	case strings.Contains(msg, "already processed, skipping"):
		stats.WebhookDuplicates++
	case strings.HasPrefix(msg, "Rate limit exceeded for"):
		stats.ClientRateLimitHits++
	}
}

func extractUserActivity(msg string, stats *LogStats) {
	if email := emailRegex.FindString(msg); email != "" {
		stats.UserActivities[email]++
	}
}

func extractErrorPattern(msg string, stats *LogStats) {
	pattern := msg
	if i := strings.Index(msg, ":"); i > 0 {
		pattern = msg[:i]
	}
	stats.ErrorPatterns[strings.TrimSpace(pattern)]++
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Authentication Statistics:")
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Printf("   Registrations: %d\n", stats.Registrations)
	fmt.Printf("   Failed Registrations: %d\n", stats.RegistrationFailures)

	fmt.Println("\n2. Video Generation:")
	printTop(stats.GenerationsByModel, 10, "videos")
	fmt.Println("   Model failures by class:")
	printTop(stats.ModelFailuresByClass, 10, "failures")
	fmt.Printf("   Provider rate limits: %d\n", stats.ProviderRateLimits)

	fmt.Println("\n3. Payments:")
	fmt.Printf("   Verified: %d\n", stats.PaymentsVerified)
	fmt.Printf("   Verification failures: %d\n", stats.PaymentVerifyFailures)
	fmt.Printf("   Webhooks rejected: %d\n", stats.WebhooksRejected)
	fmt.Printf("   Duplicate webhooks: %d\n", stats.WebhookDuplicates)

	fmt.Println("\n4. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)
	fmt.Printf("   Client rate limit hits: %d\n", stats.ClientRateLimitHits)

	fmt.Println("\n5. Most Active Users:")
	printTop(stats.UserActivities, 5, "activities")

	fmt.Println("\n6. Most Common Errors:")
	printTop(stats.ErrorPatterns, 5, "occurrences")
}

func printTop(counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var list []entry
	for k, c := range counts {
		list = append(list, entry{k, c})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].count == list[j].count {
			return list[i].key < list[j].key
		}
		return list[i].count > list[j].count
	})

	for i, e := range list {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d %s\n", e.key, e.count, unit)
	}
}
