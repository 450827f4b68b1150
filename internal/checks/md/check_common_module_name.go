package md

import (
	"strings"
	"unicode/utf8"

	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const (
	CommonModuleNameClientID       = "common-module-name-client"
	CommonModuleNameClientServerID = "common-module-name-client-server"
	CommonModuleNameGlobalID       = "common-module-name-global"
	CommonModuleNameServerCallID   = "common-module-name-server-call-postfix"

	OptionNameSuffixList = "nameSuffixList"
	OptionCaseSensitive  = "caseSensitive"
)

// CommonModuleNameCheck requires common modules of one type to carry one of
// the configured suffixes in their name.
//
// A suffix counts when it occurs anywhere after the first character, so
// "SalesClientPredefined" satisfies the client rule while "ClientSales" does
// not.
type CommonModuleNameCheck struct {
	base
	moduleType    model.CommonModuleType
	defaultSuffix string
	messageKey    messages.Key
}

func NewCommonModuleNameClient(cat *messages.Catalog) *CommonModuleNameCheck {
	return newCommonModuleNameCheck(cat, CommonModuleNameClientID, model.ModuleTypeClient, "Client,Клиент",
		messages.CommonModuleNameClientTitle, messages.CommonModuleNameClientDescription, messages.CommonModuleNameClientMessage)
}

func NewCommonModuleNameClientServer(cat *messages.Catalog) *CommonModuleNameCheck {
	return newCommonModuleNameCheck(cat, CommonModuleNameClientServerID, model.ModuleTypeClientServer, "ClientServer,КлиентСервер",
		messages.CommonModuleNameClientServerTitle, messages.CommonModuleNameClientServerDescription, messages.CommonModuleNameClientServerMessage)
}

func NewCommonModuleNameGlobal(cat *messages.Catalog) *CommonModuleNameCheck {
	return newCommonModuleNameCheck(cat, CommonModuleNameGlobalID, model.ModuleTypeClientGlobal, "Global,Глобальный",
		messages.CommonModuleNameGlobalTitle, messages.CommonModuleNameGlobalDescription, messages.CommonModuleNameGlobalMessage)
}

func NewCommonModuleNameServerCall(cat *messages.Catalog) *CommonModuleNameCheck {
	return newCommonModuleNameCheck(cat, CommonModuleNameServerCallID, model.ModuleTypeServerCall, "ServerCall,ВызовСервера",
		messages.CommonModuleNameServerCallTitle, messages.CommonModuleNameServerCallDescription, messages.CommonModuleNameServerCallMessage)
}

func newCommonModuleNameCheck(cat *messages.Catalog, id string, mt model.CommonModuleType, suffixes string, title, desc, msg messages.Key) *CommonModuleNameCheck {
	return &CommonModuleNameCheck{
		base: base{
			cat:         cat,
			id:          id,
			title:       title,
			description: desc,
			kinds:       []model.Kind{model.KindCommonModule},
			severity:    checks.SeverityMinor,
			typ:         checks.TypeCodeStyle,
		},
		moduleType:    mt,
		defaultSuffix: suffixes,
		messageKey:    msg,
	}
}

// ModuleType is the common module type the check applies to.
func (c *CommonModuleNameCheck) ModuleType() model.CommonModuleType {
	return c.moduleType
}

func (c *CommonModuleNameCheck) Options() []checks.Option {
	return []checks.Option{
		c.option(OptionNameSuffixList, checks.OptionList, c.defaultSuffix, messages.OptionNameSuffixList),
		c.option(OptionCaseSensitive, checks.OptionBool, "true", messages.OptionCaseSensitive),
	}
}

func (c *CommonModuleNameCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) error {
	if !c.applies(obj) || model.ClassifyCommonModule(obj) != c.moduleType {
		return nil
	}

	suffixes := params.List(OptionNameSuffixList)
	if len(suffixes) == 0 {
		return nil
	}
	if hasInnerAffix(obj.Name(), suffixes, params.Bool(OptionCaseSensitive)) {
		return nil
	}
	acceptor.AddIssue(obj, model.FeatureName, c.cat.Format(c.messageKey, strings.Join(suffixes, ", ")))
	return nil
}

// hasInnerAffix reports whether any affix occurs in name past its first rune.
func hasInnerAffix(name string, affixes []string, caseSensitive bool) bool {
	_, size := utf8.DecodeRuneInString(name)
	rest := name[size:]
	if !caseSensitive {
		rest = strings.ToLower(rest)
	}
	for _, a := range affixes {
		if !caseSensitive {
			a = strings.ToLower(a)
		}
		if strings.Contains(rest, a) {
			return true
		}
	}
	return false
}
