package md

import (
	"fmt"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	RegisterResourcePrecisionID = "register-resource-precision"

	OptionMaxPrecision = "maxPrecision"
)

type RegisterResourcePrecisionCheck struct {
	base
}

func NewRegisterResourcePrecision(cat *messages.Catalog) *RegisterResourcePrecisionCheck {
	return &RegisterResourcePrecisionCheck{base: base{
		cat:         cat,
		id:          RegisterResourcePrecisionID,
		title:       messages.ResourcePrecisionTitle,
		description: messages.ResourcePrecisionDescription,
		kinds:       model.RegisterKinds(),
		severity:    checks.SeverityMajor,
		typ:         checks.TypeError,
	}}
}

func (c *RegisterResourcePrecisionCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionMaxPrecision, checks.OptionInt, "25", messages.OptionMaxPrecision),
	}
}

func (c *RegisterResourcePrecisionCheck) ValidateParameters(p checks.Parameters) error {
	if n := p.Int(OptionMaxPrecision); n < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", checks.ErrInvalidOption, OptionMaxPrecision, n)
	}
	return nil
}

func (c *RegisterResourcePrecisionCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	maxPrecision := params.Int(OptionMaxPrecision)
	for _, res := range obj.Children(model.FeatureResources) {
		if !hasType(res, "Number") {
			continue
		}
		if p := res.Int(model.FeaturePrecision); p > maxPrecision {
			acceptor.AddIssue(res, model.FeaturePrecision, c.cat.Format(messages.ResourcePrecisionMessage, p, maxPrecision))
		}
	}
	return nil
}
