package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_LinksConfigurationAndSorts(t *testing.T) {
	cfg := NewObject(KindConfiguration, "Trade").Set(FeatureNamePrefix, "ext_")
	b := NewObject(KindCommonModule, "B")
	a := NewObject(KindCatalog, "A")

	snap, err := NewSnapshot(b, cfg, a)
	require.NoError(t, err)

	objs := snap.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, "Catalog.A", objs[0].FQN())
	assert.Equal(t, "CommonModule.B", objs[1].FQN())
	assert.Equal(t, "Configuration.Trade", objs[2].FQN())

	assert.Equal(t, cfg, snap.Configuration())
	assert.Equal(t, cfg, b.Configuration())

	got, ok := snap.Lookup("Catalog.A")
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestNewSnapshot_NestedObjectsSeeConfiguration(t *testing.T) {
	cfg := NewObject(KindConfiguration, "Trade")
	attr := NewObject(KindAttribute, "Price")
	cat := NewObject(KindCatalog, "Goods").Add(FeatureAttributes, attr)

	_, err := NewSnapshot(cfg, cat)
	require.NoError(t, err)
	assert.Equal(t, cfg, attr.Configuration())
}

func TestNewSnapshot_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*Node
	}{
		{name: "duplicate", nodes: []*Node{NewObject(KindCatalog, "A"), NewObject(KindCatalog, "A")}},
		{name: "two configurations", nodes: []*Node{NewObject(KindConfiguration, "A"), NewObject(KindConfiguration, "B")}},
		{name: "nested kind", nodes: []*Node{NewObject(KindAttribute, "A")}},
		{name: "no name", nodes: []*Node{NewObject(KindCatalog, "")}},
		{name: "nil", nodes: []*Node{nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSnapshot(tt.nodes...)
			assert.Error(t, err)
		})
	}
}

func TestSnapshot_NilSafe(t *testing.T) {
	var s *Snapshot
	assert.Nil(t, s.Configuration())
	assert.Nil(t, s.Objects())
	assert.Equal(t, 0, s.Len())
	_, ok := s.Lookup("x")
	assert.False(t, ok)
}
