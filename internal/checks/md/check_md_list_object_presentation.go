package md

import (
	"mdcheck/internal/checks"
	"mdcheck/internal/messages"
	"mdcheck/internal/model"
)

const MdListObjectPresentationID = "md-list-object-presentation"

type MdListObjectPresentationCheck struct {
	base
}

func NewMdListObjectPresentation(cat *messages.Catalog) *MdListObjectPresentationCheck {
	return &MdListObjectPresentationCheck{base: base{
		cat:         cat,
		id:          MdListObjectPresentationID,
		title:       messages.ListPresentationTitle,
		description: messages.ListPresentationDescription,
		kinds: []model.Kind{
			model.KindCatalog,
			model.KindDocument,
			model.KindChartOfCharacteristicTypes,
			model.KindChartOfAccounts,
			model.KindChartOfCalculationTypes,
			model.KindExchangePlan,
			model.KindBusinessProcess,
			model.KindTask,
		},
		severity: checks.SeverityMinor,
		typ:      checks.TypeUIStyle,
	}}
}

func (c *MdListObjectPresentationCheck) Check(obj model.Object, acceptor checks.ResultAcceptor, _ checks.Parameters) error {
	if !c.applies(obj) {
		return nil
	}
	if obj.Local(model.FeatureObjectPresentation).IsBlank() && obj.Local(model.FeatureListPresentation).IsBlank() {
		acceptor.AddIssue(obj, model.FeatureListPresentation, c.cat.Text(messages.ListPresentationMessage))
	}
	return nil
}
