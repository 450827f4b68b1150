package md

import (
	"fmt"
	"unicode/utf8"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	MdObjectNameLengthID = "md-object-name-length"

	OptionMaxNameLength = "maxNameLength"
)

// MdObjectNameLengthCheck limits the length of top-level object names,
// counted in characters.
type MdObjectNameLengthCheck struct {
	base
}

func NewMdObjectNameLength(cat *messages.Catalog) *MdObjectNameLengthCheck {
	return &MdObjectNameLengthCheck{base: base{
		cat:         cat,
		id:          MdObjectNameLengthID,
		title:       messages.NameLengthTitle,
		description: messages.NameLengthDescription,
		kinds:       model.TopLevelKinds(),
		severity:    checks.SeverityCritical,
		typ:         checks.TypePortability,
	}}
}

func (c *MdObjectNameLengthCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionMaxNameLength, checks.OptionInt, "80", messages.OptionMaxNameLength),
	}
}

func (c *MdObjectNameLengthCheck) ValidateParameters(p checks.Parameters) error {
	if n := p.Int(OptionMaxNameLength); n < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", checks.ErrInvalidOption, OptionMaxNameLength, n)
	}
	return nil
}

func (c *MdObjectNameLengthCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	maxLen := params.Int(OptionMaxNameLength)
	if n := utf8.RuneCountInString(obj.Name()); n > maxLen {
		acceptor.AddIssue(obj, model.FeatureName, c.cat.Format(messages.NameLengthMessage, n, maxLen))
	}
	return nil
}
