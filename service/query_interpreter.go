package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"saas-forecast/domain"
)

const amountPattern = `\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(thousand|million|k|m)?\b`

var (
	monthsRe      = regexp.MustCompile(`(\d+)\s*[- ]*\s*month`)
	salesPeopleRe = regexp.MustCompile(`(\d+)\s*(?:sales\s*people|salespeople|sales)`)

	// "$200k marketing", "1.2m ad budget"
	spendAfterRe = regexp.MustCompile(amountPattern + `\s*(?:marketing|advertis|ads?\b|budget|spend)`)
	// "marketing spend $200k", "ad budget of 50,000"
	spendBeforeRe = regexp.MustCompile(`\b(?:marketing|advertising|ads?|budget|spend)\b(?:\s+(?:spend|budget))?\s*(?:of|at|is|:|=)?\s*` + amountPattern)

	percentConversionRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*conv`)
	fractionConversionRe = regexp.MustCompile(`(0\.\d+)\s*conv`)
	conversionPercentRe  = regexp.MustCompile(`conv\w*(?:\s+rate)?\s*(?:of|at|is|:|=)?\s*(\d+(?:\.\d+)?)\s*%`)
)

// InterpretQuery extracts forecast parameters from free text. Fields that
// cannot be found are left nil; it never fails.
func InterpretQuery(text string) domain.PartialParameters {
	text = strings.ToLower(text)
	var out domain.PartialParameters

	if m := monthsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.Months = &n
		}
	}

	if m := salesPeopleRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.SalesPeople = &n
		}
	}

	if spend, ok := parseMarketingSpend(text); ok {
		out.MarketingSpend = &spend
	}

	if rate, ok := parseConversionRate(text); ok {
		out.ConversionRate = &rate
	}

	return out
}

func parseMarketingSpend(text string) (int, bool) {
	after := spendAfterRe.FindStringSubmatchIndex(text)
	before := spendBeforeRe.FindStringSubmatchIndex(text)

	var loc []int
	switch {
	case after == nil && before == nil:
		return 0, false
	case before == nil:
		loc = after
	case after == nil:
		loc = before
	case after[0] <= before[0]:
		loc = after
	default:
		loc = before
	}

	amount := text[loc[2]:loc[3]]
	unit := ""
	if loc[4] >= 0 {
		unit = text[loc[4]:loc[5]]
	}
	return toAmount(amount, unit)
}

func toAmount(amount, unit string) (int, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch unit {
	case "k", "thousand":
		n *= 1_000
	case "m", "million":
		n *= 1_000_000
	}
	return int(math.Trunc(n)), true
}

func parseConversionRate(text string) (float64, bool) {
	if m := percentConversionRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return n / 100, true
		}
	}
	if m := fractionConversionRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return n, true
		}
	}
	if m := conversionPercentRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return n / 100, true
		}
	}
	return 0, false
}
