package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults and returns a normalized copy plus
// anything an operator should know before the run starts.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.Scrape.Workers == 0 {
		out.Scrape.Workers = 30
	}
	if out.Scrape.Workers < 0 {
		res.addErr("scrape.workers must be > 0")
	}

	if out.Scrape.StalenessDays == 0 {
		out.Scrape.StalenessDays = 30
	}
	if out.Scrape.StalenessDays < 0 {
		res.addErr("scrape.staleness_days must be > 0")
	}

	if out.Scrape.HostRatePerSec == 0 {
		out.Scrape.HostRatePerSec = 5
	}
	if out.Scrape.HostBurst == 0 {
		out.Scrape.HostBurst = 5
	}

	if out.Schedule.IntervalMinutes < 0 {
		res.addErr("schedule.interval_minutes must be >= 0")
	} else if out.Schedule.IntervalMinutes > 0 && out.Schedule.IntervalMinutes < 10 {
		res.addWarn("schedule.interval_minutes is very low (%d); vendor APIs may rate-limit.", out.Schedule.IntervalMinutes)
	}

	check := func(name string, s Source) {
		if s.Enabled && strings.TrimSpace(s.CompaniesFile) == "" {
			res.addErr("sources.%s.companies_file is required when sources.%s.enabled=true", name, name)
		}
	}
	check("greenhouse", out.Sources.Greenhouse)
	check("ashby", out.Sources.Ashby)
	check("bamboohr", out.Sources.BambooHR)
	check("lever", out.Sources.Lever)
	check("workday", out.Sources.Workday)
	check("icims", out.Sources.ICIMS)

	anyEnabled := out.Sources.Greenhouse.Enabled || out.Sources.Ashby.Enabled ||
		out.Sources.BambooHR.Enabled || out.Sources.Lever.Enabled ||
		out.Sources.Workday.Enabled || out.Sources.ICIMS.Enabled
	if !anyEnabled {
		res.addWarn("no sources enabled; the run will abort with nothing to do.")
	}

	return out, res
}
