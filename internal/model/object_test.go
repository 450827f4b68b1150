package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_TypedAccessors(t *testing.T) {
	obj := NewObject(KindCatalog, "Products").
		Set(FeatureSynonym, map[string]any{"en": "Products", "ru": "Товары"}).
		Set(FeatureHierarchical, true).
		Set(FeatureOwners, []any{"Catalog.Companies"}).
		Add(FeatureAttributes,
			NewObject(KindAttribute, "Price").Set(FeatureType, "Number").Set(FeaturePrecision, 15),
		)

	assert.Equal(t, "Catalog.Products", obj.FQN())
	assert.Equal(t, "Products", obj.Text(FeatureName))
	assert.True(t, obj.Bool(FeatureHierarchical))
	assert.Equal(t, []string{"Catalog.Companies"}, obj.Strings(FeatureOwners))
	assert.Equal(t, "Товары", obj.Local(FeatureSynonym).Get("ru"))
	assert.Equal(t, []string{"en", "ru"}, obj.Local(FeatureSynonym).Languages())

	attrs := obj.Children(FeatureAttributes)
	require.Len(t, attrs, 1)
	assert.Equal(t, "Catalog.Products.Attribute.Price", attrs[0].FQN())
	assert.Equal(t, 15, attrs[0].Int(FeaturePrecision))
	assert.Equal(t, obj, attrs[0].Parent())
}

func TestNode_UnsetFeaturesReturnZeroValues(t *testing.T) {
	obj := NewObject(KindScheduledJob, "Exchange")

	assert.False(t, obj.Has(FeatureDescription))
	assert.Equal(t, "", obj.Text(FeatureDescription))
	assert.False(t, obj.Bool(FeaturePredefined))
	assert.Nil(t, obj.Child(FeatureSchedule))
	assert.Empty(t, obj.Children(FeatureAttributes))
	assert.True(t, obj.Local(FeatureSynonym).IsBlank())
}

func TestNode_WrongAccessorPanics(t *testing.T) {
	obj := NewObject(KindCommonModule, "Common").Set(FeatureServer, true)

	assert.Panics(t, func() { obj.Int(FeatureServer) })
	assert.Panics(t, func() { obj.Bool(Feature("noSuchFeature")) })
}

func TestNode_SetValueRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		feature Feature
		value   any
	}{
		{name: "unknown feature", feature: "bogus", value: true},
		{name: "bool as string", feature: FeatureServer, value: "yes"},
		{name: "fractional int", feature: FeaturePrecision, value: 1.5},
		{name: "non-string list item", feature: FeatureType, value: []any{"String", 10}},
		{name: "local string with number", feature: FeatureSynonym, value: map[string]any{"en": 1}},
		{name: "child of wrong kind", feature: FeatureAttributes, value: NewObject(KindResource, "Amount")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewObject(KindCatalog, "Goods").SetValue(tt.feature, tt.value)
			assert.Error(t, err)
		})
	}
}

func TestNode_NestedFQNWithoutName(t *testing.T) {
	job := NewObject(KindScheduledJob, "Cleanup").
		Set(FeatureSchedule, NewObject(KindSchedule, "").Set(FeatureRepeatPeriodInDay, 60))

	schedule := job.Child(FeatureSchedule)
	require.NotNil(t, schedule)
	assert.Equal(t, "ScheduledJob.Cleanup.Schedule", schedule.FQN())
}

func TestLocalString_IsBlank(t *testing.T) {
	assert.True(t, LocalString(nil).IsBlank())
	assert.True(t, LocalString{"en": "  "}.IsBlank())
	assert.False(t, LocalString{"en": " ", "ru": "Да"}.IsBlank())
}

func TestTrackingObject_RecordsReads(t *testing.T) {
	obj := NewObject(KindCommonModule, "Common").Set(FeatureServer, true)
	tracked := NewTrackingObject(obj)

	assert.Equal(t, KindCommonModule, tracked.Kind())
	assert.Equal(t, "CommonModule.Common", tracked.FQN())
	assert.Empty(t, tracked.AccessedFeatures())

	assert.True(t, tracked.Bool(FeatureServer))
	_ = tracked.Name()
	_ = tracked.Bool(FeatureServer)

	assert.Equal(t, []Feature{FeatureName, FeatureServer}, tracked.AccessedFeatures())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("commonmodule")
	require.NoError(t, err)
	assert.Equal(t, KindCommonModule, k)

	_, err = ParseKind("Widget")
	assert.Error(t, err)

	assert.True(t, KindAccumulationRegister.IsRegister())
	assert.True(t, KindAccumulationRegister.IsDataObject())
	assert.False(t, KindCommonModule.IsDataObject())
	assert.False(t, KindAttribute.IsTopLevel())
}
