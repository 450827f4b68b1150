package model

import (
	"sort"
	"strings"
)

// Feature names a typed property of a metadata object. Issues are bound to a
// feature so the host can position a marker on it instead of the whole object.
type Feature string

// ValueType is the type of value a feature holds.
type ValueType int

const (
	ValueBool ValueType = iota
	ValueInt
	ValueString
	ValueStrings
	ValueLocal
	ValueChildren
	ValueChild
)

func (t ValueType) String() string {
	switch t {
	case ValueBool:
		return "bool"
	case ValueInt:
		return "int"
	case ValueString:
		return "string"
	case ValueStrings:
		return "string list"
	case ValueLocal:
		return "local string"
	case ValueChildren:
		return "object list"
	case ValueChild:
		return "object"
	default:
		return "unknown"
	}
}

const (
	FeatureName    Feature = "name"
	FeatureSynonym Feature = "synonym"
	FeatureComment Feature = "comment"

	// Configuration
	FeatureDataLockControlMode           Feature = "dataLockControlMode"
	FeatureNamePrefix                    Feature = "namePrefix"
	FeatureConfigurationExtensionPurpose Feature = "configurationExtensionPurpose"
	FeatureObjectBelonging               Feature = "objectBelonging"

	// Common modules
	FeatureServer                    Feature = "server"
	FeatureServerCall                Feature = "serverCall"
	FeatureClientManagedApplication  Feature = "clientManagedApplication"
	FeatureClientOrdinaryApplication Feature = "clientOrdinaryApplication"
	FeatureExternalConnection        Feature = "externalConnection"
	FeatureGlobal                    Feature = "global"
	FeaturePrivileged                Feature = "privileged"
	FeatureReturnValuesReuse         Feature = "returnValuesReuse"

	// Subsystems
	FeatureIncludeInCommandInterface Feature = "includeInCommandInterface"
	FeatureSubsystems                Feature = "subsystems"

	// Scheduled jobs
	FeatureDescription            Feature = "description"
	FeaturePredefined             Feature = "predefined"
	FeatureUse                    Feature = "use"
	FeatureMethodName             Feature = "methodName"
	FeatureSchedule               Feature = "schedule"
	FeatureRepeatPeriodInDay      Feature = "repeatPeriodInDay"
	FeatureDetailedDailySchedules Feature = "detailedDailySchedules"

	// Data objects
	FeatureOwners                     Feature = "owners"
	FeatureHierarchical               Feature = "hierarchical"
	FeatureObjectPresentation         Feature = "objectPresentation"
	FeatureListPresentation           Feature = "listPresentation"
	FeatureExtendedObjectPresentation Feature = "extendedObjectPresentation"
	FeatureExtendedListPresentation   Feature = "extendedListPresentation"
	FeatureAttributes                 Feature = "attributes"
	FeatureTabularSections            Feature = "tabularSections"
	FeatureStandardAttributes         Feature = "standardAttributes"
	FeatureDimensions                 Feature = "dimensions"
	FeatureResources                  Feature = "resources"

	// Attributes, dimensions and resources
	FeatureType      Feature = "type"
	FeaturePrecision Feature = "precision"
	FeatureScale     Feature = "scale"
	FeatureLength    Feature = "length"
)

type featureSpec struct {
	valueType ValueType
	childKind Kind
}

var featureSchema = map[Feature]featureSpec{
	FeatureName:    {valueType: ValueString},
	FeatureSynonym: {valueType: ValueLocal},
	FeatureComment: {valueType: ValueString},

	FeatureDataLockControlMode:           {valueType: ValueString},
	FeatureNamePrefix:                    {valueType: ValueString},
	FeatureConfigurationExtensionPurpose: {valueType: ValueString},
	FeatureObjectBelonging:               {valueType: ValueString},

	FeatureServer:                    {valueType: ValueBool},
	FeatureServerCall:                {valueType: ValueBool},
	FeatureClientManagedApplication:  {valueType: ValueBool},
	FeatureClientOrdinaryApplication: {valueType: ValueBool},
	FeatureExternalConnection:        {valueType: ValueBool},
	FeatureGlobal:                    {valueType: ValueBool},
	FeaturePrivileged:                {valueType: ValueBool},
	FeatureReturnValuesReuse:         {valueType: ValueString},

	FeatureIncludeInCommandInterface: {valueType: ValueBool},
	FeatureSubsystems:                {valueType: ValueChildren, childKind: KindSubsystem},

	FeatureDescription:            {valueType: ValueString},
	FeaturePredefined:             {valueType: ValueBool},
	FeatureUse:                    {valueType: ValueBool},
	FeatureMethodName:             {valueType: ValueString},
	FeatureSchedule:               {valueType: ValueChild, childKind: KindSchedule},
	FeatureRepeatPeriodInDay:      {valueType: ValueInt},
	FeatureDetailedDailySchedules: {valueType: ValueChildren, childKind: KindSchedule},

	FeatureOwners:                     {valueType: ValueStrings},
	FeatureHierarchical:               {valueType: ValueBool},
	FeatureObjectPresentation:         {valueType: ValueLocal},
	FeatureListPresentation:           {valueType: ValueLocal},
	FeatureExtendedObjectPresentation: {valueType: ValueLocal},
	FeatureExtendedListPresentation:   {valueType: ValueLocal},
	FeatureAttributes:                 {valueType: ValueChildren, childKind: KindAttribute},
	FeatureTabularSections:            {valueType: ValueChildren, childKind: KindTabularSection},
	FeatureStandardAttributes:         {valueType: ValueChildren, childKind: KindStandardAttribute},
	FeatureDimensions:                 {valueType: ValueChildren, childKind: KindDimension},
	FeatureResources:                  {valueType: ValueChildren, childKind: KindResource},

	FeatureType:      {valueType: ValueStrings},
	FeaturePrecision: {valueType: ValueInt},
	FeatureScale:     {valueType: ValueInt},
	FeatureLength:    {valueType: ValueInt},
}

// LookupFeature returns the feature registered under name and its value type.
func LookupFeature(name string) (Feature, ValueType, bool) {
	f := Feature(name)
	spec, ok := featureSchema[f]
	if !ok {
		return "", 0, false
	}
	return f, spec.valueType, true
}

// ValueTypeOf returns the value type of f. Unknown features report false.
func (f Feature) ValueTypeOf() (ValueType, bool) {
	spec, ok := featureSchema[f]
	return spec.valueType, ok
}

// ChildKind returns the kind of objects held by a child or children feature.
func (f Feature) ChildKind() (Kind, bool) {
	spec, ok := featureSchema[f]
	if !ok || (spec.valueType != ValueChildren && spec.valueType != ValueChild) {
		return "", false
	}
	return spec.childKind, true
}

// LocalString is a text value translated into several languages, keyed by
// language code.
type LocalString map[string]string

// Get returns the text for lang, or "" when the language is absent.
func (s LocalString) Get(lang string) string {
	if s == nil {
		return ""
	}
	return s[lang]
}

// Languages returns the language codes present, sorted.
func (s LocalString) Languages() []string {
	out := make([]string, 0, len(s))
	for lang := range s {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// IsBlank reports whether no language carries non-whitespace text.
func (s LocalString) IsBlank() bool {
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
