package engine

import (
	"reflect"
	"testing"

	"mdcheck/internal/config"
	"mdcheck/internal/model"
)

func fqns(objects []model.Object) []string {
	var out []string
	for _, o := range objects {
		out = append(out, o.FQN())
	}
	return out
}

func TestFilterObjects(t *testing.T) {
	objects := []model.Object{
		model.NewObject(model.KindCatalog, "Companies"),
		model.NewObject(model.KindCatalog, "Goods"),
		model.NewObject(model.KindCatalog, "LegacyGoods"),
		model.NewObject(model.KindCommonModule, "SalesClient"),
		model.NewObject(model.KindConfiguration, "Trade"),
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		kinds   []string
		want    []string
	}{
		{
			name: "no filters",
			want: []string{"Catalog.Companies", "Catalog.Goods", "Catalog.LegacyGoods", "CommonModule.SalesClient", "Configuration.Trade"},
		},
		{
			name:    "include is case-insensitive",
			include: []string{"catalog.*goods"},
			want:    []string{"Catalog.Goods", "Catalog.LegacyGoods"},
		},
		{
			name:    "exclude wins over include",
			include: []string{"Catalog.*"},
			exclude: []string{"Catalog.Legacy*"},
			want:    []string{"Catalog.Companies", "Catalog.Goods"},
		},
		{
			name:  "kinds",
			kinds: []string{"CommonModule", "Configuration"},
			want:  []string{"CommonModule.SalesClient", "Configuration.Trade"},
		},
		{
			name:    "kinds and include",
			include: []string{"*.S*"},
			kinds:   []string{"CommonModule"},
			want:    []string{"CommonModule.SalesClient"},
		},
		{
			name:    "blank pattern matches nothing",
			include: []string{" "},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Project.Include = tt.include
			cfg.Project.Exclude = tt.exclude
			cfg.Project.Kinds = tt.kinds

			got := fqns(FilterObjects(objects, cfg))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestFilterObjects_NilConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil config")
		}
	}()
	FilterObjects(nil, nil)
}
