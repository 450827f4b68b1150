package md

import (
	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	ConfigurationDataLockModeID = "configuration-data-lock-mode"

	DataLockModeManaged = "Managed"
)

type ConfigurationDataLockModeCheck struct {
	base
}

func NewConfigurationDataLockMode(cat *messages.Catalog) *ConfigurationDataLockModeCheck {
	return &ConfigurationDataLockModeCheck{base: base{
		cat:         cat,
		id:          ConfigurationDataLockModeID,
		title:       messages.ConfigurationDataLockTitle,
		description: messages.ConfigurationDataLockDescription,
		kinds:       []model.Kind{model.KindConfiguration},
		severity:    checks.SeverityMajor,
		typ:         checks.TypePerformance,
	}}
}

// Check skips configurations that do not state a lock mode at all.
func (c *ConfigurationDataLockModeCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) || !obj.Has(model.FeatureDataLockControlMode) {
		return nil
	}
	mode := obj.Text(model.FeatureDataLockControlMode)
	if mode != DataLockModeManaged {
		acceptor.AddIssue(obj, model.FeatureDataLockControlMode, c.cat.Format(messages.ConfigurationDataLockMessage, mode))
	}
	return nil
}
