package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tecelar/internal/domain"
)

func TestCropMapping(t *testing.T) {
	tests := []struct {
		domain domain.CropType
		wire   string
	}{
		{domain.CropLeft, "ESQUERDA"},
		{domain.CropRight, "DIREITA"},
		{domain.CropFull, "COMPLETO"},
	}

	for _, tt := range tests {
		item := domain.DefaultItem(1, 0)
		item.CropType = tt.domain

		wire := FromItem(item)
		assert.Equal(t, tt.wire, wire.TipoCrop)
		assert.Equal(t, tt.domain, wire.ToItem().CropType)
	}
}

func TestCropMapping_UnknownDefaultsToLeft(t *testing.T) {
	item := ItemOrdem{NumeroPagina: 1, TipoCrop: "DIAGONAL"}
	assert.Equal(t, domain.CropLeft, item.ToItem().CropType)

	item.TipoCrop = ""
	assert.Equal(t, domain.CropLeft, item.ToItem().CropType)
}

func TestOrderWireNames(t *testing.T) {
	fabric := "malha PV"
	order := domain.Order{
		Client:         "Tecelagem Aurora",
		Date:           "2026-03-14",
		Time:           "09:00",
		Fabric:         &fabric,
		SublimatecTech: true,
		Items:          []domain.Item{domain.DefaultItem(1, 0)},
	}

	data, err := json.Marshal(FromOrder(order))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The backend speaks Portuguese; these names are the contract.
	assert.Equal(t, "Tecelagem Aurora", decoded["cliente"])
	assert.Equal(t, "2026-03-14", decoded["data"])
	assert.Equal(t, "09:00", decoded["hora"])
	assert.Equal(t, "malha PV", decoded["tecido"])
	assert.Equal(t, true, decoded["tecSublimatec"])
	assert.NotContains(t, decoded, "id", "unsaved orders carry no id on the wire")
	assert.NotContains(t, decoded, "papel", "unset optionals are omitted")

	itens, ok := decoded["itens"].([]any)
	require.True(t, ok)
	item := itens[0].(map[string]any)
	assert.Equal(t, float64(1), item["numeroPagina"])
	assert.Equal(t, float64(0), item["numeroLinha"])
	assert.Equal(t, "ESQUERDA", item["tipoCrop"])
}

func TestOrderMapping_RoundTrip(t *testing.T) {
	id := int64(12)
	ref := "estampa-01"
	caminho := "stored_estampa-01.png"

	order := domain.Order{
		ID:         &id,
		Client:     "Malharia do Vale",
		Date:       "2026-03-14",
		Time:       "10:30",
		ClientTech: true,
		Calender:   true,
		Items: []domain.Item{
			{PageNumber: 2, LineNumber: 4, Ref: &ref, CropType: domain.CropRight, ImagePath: &caminho},
		},
	}

	assert.Equal(t, order, FromOrder(order).ToOrder())
}
