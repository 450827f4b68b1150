package model

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the type of a metadata object.
//
// The set is closed: checks declare the kinds they apply to, and the engine
// uses that list to skip objects without invoking the check.
type Kind string

const (
	KindConfiguration              Kind = "Configuration"
	KindCommonModule               Kind = "CommonModule"
	KindSubsystem                  Kind = "Subsystem"
	KindScheduledJob               Kind = "ScheduledJob"
	KindCatalog                    Kind = "Catalog"
	KindDocument                   Kind = "Document"
	KindEnum                       Kind = "Enum"
	KindConstant                   Kind = "Constant"
	KindExchangePlan               Kind = "ExchangePlan"
	KindChartOfCharacteristicTypes Kind = "ChartOfCharacteristicTypes"
	KindChartOfAccounts            Kind = "ChartOfAccounts"
	KindChartOfCalculationTypes    Kind = "ChartOfCalculationTypes"
	KindBusinessProcess            Kind = "BusinessProcess"
	KindTask                       Kind = "Task"
	KindInformationRegister        Kind = "InformationRegister"
	KindAccumulationRegister       Kind = "AccumulationRegister"
	KindAccountingRegister         Kind = "AccountingRegister"
	KindCalculationRegister        Kind = "CalculationRegister"

	// Nested kinds never appear at the top level of a snapshot.
	KindAttribute         Kind = "Attribute"
	KindResource          Kind = "Resource"
	KindDimension         Kind = "Dimension"
	KindTabularSection    Kind = "TabularSection"
	KindStandardAttribute Kind = "StandardAttribute"
	KindSchedule          Kind = "Schedule"
)

var topLevelKinds = []Kind{
	KindConfiguration,
	KindCommonModule,
	KindSubsystem,
	KindScheduledJob,
	KindCatalog,
	KindDocument,
	KindEnum,
	KindConstant,
	KindExchangePlan,
	KindChartOfCharacteristicTypes,
	KindChartOfAccounts,
	KindChartOfCalculationTypes,
	KindBusinessProcess,
	KindTask,
	KindInformationRegister,
	KindAccumulationRegister,
	KindAccountingRegister,
	KindCalculationRegister,
}

var nestedKinds = []Kind{
	KindAttribute,
	KindResource,
	KindDimension,
	KindTabularSection,
	KindStandardAttribute,
	KindSchedule,
}

// TopLevelKinds returns every kind that can appear at the top level of a snapshot.
func TopLevelKinds() []Kind {
	out := make([]Kind, len(topLevelKinds))
	copy(out, topLevelKinds)
	return out
}

// AllKinds returns top-level and nested kinds, sorted by name.
func AllKinds() []Kind {
	out := make([]Kind, 0, len(topLevelKinds)+len(nestedKinds))
	out = append(out, topLevelKinds...)
	out = append(out, nestedKinds...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKind resolves a kind by name. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range AllKinds() {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown object kind %q", s)
}

func (k Kind) IsTopLevel() bool {
	for _, t := range topLevelKinds {
		if t == k {
			return true
		}
	}
	return false
}

// IsRegister reports whether k is one of the register kinds.
func (k Kind) IsRegister() bool {
	switch k {
	case KindInformationRegister, KindAccumulationRegister, KindAccountingRegister, KindCalculationRegister:
		return true
	default:
		return false
	}
}

// IsDataObject reports whether objects of kind k are stored in the infobase
// and own attributes.
func (k Kind) IsDataObject() bool {
	switch k {
	case KindCatalog, KindDocument, KindExchangePlan, KindChartOfCharacteristicTypes,
		KindChartOfAccounts, KindChartOfCalculationTypes, KindBusinessProcess, KindTask,
		KindConstant:
		return true
	default:
		return k.IsRegister()
	}
}

// DataObjectKinds returns all kinds for which IsDataObject is true.
func DataObjectKinds() []Kind {
	var out []Kind
	for _, k := range topLevelKinds {
		if k.IsDataObject() {
			out = append(out, k)
		}
	}
	return out
}

// RegisterKinds returns all register kinds.
func RegisterKinds() []Kind {
	var out []Kind
	for _, k := range topLevelKinds {
		if k.IsRegister() {
			out = append(out, k)
		}
	}
	return out
}
