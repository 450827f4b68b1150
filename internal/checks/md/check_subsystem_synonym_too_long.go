package md

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	SubsystemSynonymTooLongID = "subsystem-synonym-too-long"

	OptionMaxLength        = "maxLength"
	OptionExcludeLanguages = "excludeLanguages"
)

// SubsystemSynonymTooLongCheck limits, per language, the synonym length of
// top-level subsystems shown in the command interface. The limit and the
// languages to skip are options; nothing about either is built in.
type SubsystemSynonymTooLongCheck struct {
	base
}

func NewSubsystemSynonymTooLong(cat *messages.Catalog) *SubsystemSynonymTooLongCheck {
	return &SubsystemSynonymTooLongCheck{base: base{
		cat:         cat,
		id:          SubsystemSynonymTooLongID,
		title:       messages.SubsystemSynonymTitle,
		description: messages.SubsystemSynonymDescription,
		kinds:       []model.Kind{model.KindSubsystem},
		severity:    checks.SeverityMinor,
		typ:         checks.TypeUIStyle,
	}}
}

func (c *SubsystemSynonymTooLongCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionMaxLength, checks.OptionInt, "35", messages.OptionMaxSynonymLength),
		c.option(OptionExcludeLanguages, checks.OptionList, "", messages.OptionExcludeLanguages),
	}
}

func (c *SubsystemSynonymTooLongCheck) ValidateParameters(p checks.Parameters) error {
	if n := p.Int(OptionMaxLength); n < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", checks.ErrInvalidOption, OptionMaxLength, n)
	}
	return nil
}

func (c *SubsystemSynonymTooLongCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) || obj.Parent() != nil || !obj.Bool(model.FeatureIncludeInCommandInterface) {
		return nil
	}

	maxLen := params.Int(OptionMaxLength)
	excluded := make(map[string]bool)
	for _, lang := range params.List(OptionExcludeLanguages) {
		excluded[strings.ToLower(lang)] = true
	}

	synonym := obj.Local(model.FeatureSynonym)
	for _, lang := range synonym.Languages() {
		if excluded[strings.ToLower(lang)] {
			continue
		}
		if n := utf8.RuneCountInString(synonym.Get(lang)); n > maxLen {
			acceptor.AddIssue(obj, model.FeatureSynonym, c.cat.Format(messages.SubsystemSynonymMessage, lang, n, maxLen))
		}
	}
	return nil
}
