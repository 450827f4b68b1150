package md

import (
	"fmt"
	"strings"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	ScheduledJobDescriptionID = "scheduled-job-description"
	ScheduledJobPeriodicityID = "scheduled-job-periodicity"

	OptionMinimumSchedulePeriod = "minimumSchedulePeriod"
)

type ScheduledJobDescriptionCheck struct {
	base
}

func NewScheduledJobDescription(cat *messages.Catalog) *ScheduledJobDescriptionCheck {
	return &ScheduledJobDescriptionCheck{base: base{
		cat:         cat,
		id:          ScheduledJobDescriptionID,
		title:       messages.JobDescriptionTitle,
		description: messages.JobDescriptionDescription,
		kinds:       []model.Kind{model.KindScheduledJob},
		severity:    checks.SeverityMinor,
		typ:         checks.TypeUIStyle,
	}}
}

func (c *ScheduledJobDescriptionCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) || !obj.Bool(model.FeaturePredefined) {
		return nil
	}
	if strings.TrimSpace(obj.Text(model.FeatureDescription)) == "" {
		acceptor.AddIssue(obj, model.FeatureDescription, c.cat.Text(messages.JobDescriptionMessage))
	}
	return nil
}

// ScheduledJobPeriodicityCheck reports schedules that repeat within a day
// more often than the configured floor. A repeat period of zero means the
// schedule does not repeat and is never reported.
type ScheduledJobPeriodicityCheck struct {
	base
}

func NewScheduledJobPeriodicity(cat *messages.Catalog) *ScheduledJobPeriodicityCheck {
	return &ScheduledJobPeriodicityCheck{base: base{
		cat:         cat,
		id:          ScheduledJobPeriodicityID,
		title:       messages.JobPeriodicityTitle,
		description: messages.JobPeriodicityDescription,
		kinds:       []model.Kind{model.KindScheduledJob},
		severity:    checks.SeverityMajor,
		typ:         checks.TypePerformance,
	}}
}

func (c *ScheduledJobPeriodicityCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionMinimumSchedulePeriod, checks.OptionInt, "60", messages.OptionMinSchedulePeriod),
	}
}

func (c *ScheduledJobPeriodicityCheck) ValidateParameters(p checks.Parameters) error {
	if n := p.Int(OptionMinimumSchedulePeriod); n < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", checks.ErrInvalidOption, OptionMinimumSchedulePeriod, n)
	}
	return nil
}

func (c *ScheduledJobPeriodicityCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	schedule := obj.Child(model.FeatureSchedule)
	if schedule == nil {
		return nil
	}
	floor := params.Int(OptionMinimumSchedulePeriod)

	c.checkPeriod(schedule, floor, acceptor)
	for _, daily := range schedule.Children(model.FeatureDetailedDailySchedules) {
		c.checkPeriod(daily, floor, acceptor)
	}
	return nil
}

func (c *ScheduledJobPeriodicityCheck) checkPeriod(schedule model.Object, floor int, acceptor checks.ResultAcceptor) {
	period := schedule.Int(model.FeatureRepeatPeriodInDay)
	if period > 0 && period < floor {
		acceptor.AddIssue(schedule, model.FeatureRepeatPeriodInDay,
			c.cat.Format(messages.JobPeriodicityMessage, period, floor))
	}
}
