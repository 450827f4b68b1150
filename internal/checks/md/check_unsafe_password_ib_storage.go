package md

import (
	"strings"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	UnsafePasswordIbStorageID = "unsafe-password-ib-storage"

	OptionPasswordWords = "passwordWords"
)

// UnsafePasswordIbStorageCheck reports string fields whose name suggests they
// hold a password. Names are matched case-insensitively.
type UnsafePasswordIbStorageCheck struct {
	base
}

func NewUnsafePasswordIbStorage(cat *messages.Catalog) *UnsafePasswordIbStorageCheck {
	return &UnsafePasswordIbStorageCheck{base: base{
		cat:         cat,
		id:          UnsafePasswordIbStorageID,
		title:       messages.UnsafePasswordTitle,
		description: messages.UnsafePasswordDescription,
		kinds:       model.DataObjectKinds(),
		severity:    checks.SeverityCritical,
		typ:         checks.TypeSecurity,
	}}
}

func (c *UnsafePasswordIbStorageCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionPasswordWords, checks.OptionList, "Password,Пароль", messages.OptionPasswordWords),
	}
}

func (c *UnsafePasswordIbStorageCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	words := params.List(OptionPasswordWords)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	if len(words) == 0 {
		return nil
	}

	for _, field := range storedFields(obj) {
		name := strings.ToLower(field.Name())
		if !containsAny(name, words) || !hasType(field, "String") {
			continue
		}
		acceptor.AddIssue(field, model.FeatureName, c.cat.Format(messages.UnsafePasswordMessage, field.Name()))
	}
	return nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasType(field model.Object, name string) bool {
	for _, t := range field.Strings(model.FeatureType) {
		if t == name {
			return true
		}
	}
	return false
}
