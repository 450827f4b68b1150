package md

import (
	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const CommonModuleTypeID = "common-module-type"

// CommonModuleTypeCheck reports common modules whose flags do not combine
// into any known module type.
type CommonModuleTypeCheck struct {
	base
}

func NewCommonModuleType(cat *messages.Catalog) *CommonModuleTypeCheck {
	return &CommonModuleTypeCheck{base: base{
		cat:         cat,
		id:          CommonModuleTypeID,
		title:       messages.CommonModuleTypeTitle,
		description: messages.CommonModuleTypeDescription,
		kinds:       []model.Kind{model.KindCommonModule},
		severity:    checks.SeverityCritical,
		typ:         checks.TypeError,
	}}
}

func (c *CommonModuleTypeCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	if model.ClassifyCommonModule(obj) == model.ModuleTypeUnknown {
		acceptor.AddIssue(obj, model.FeatureServer, c.cat.Text(messages.CommonModuleTypeMessage))
	}
	return nil
}
