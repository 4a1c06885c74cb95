// Package dto carries the backend wire shapes. Field names match the
// existing ordem-servico API, which speaks Portuguese, so the JSON stays
// bit-compatible with orders persisted by the legacy system.
package dto

import "tecelar/internal/domain"

type OrdemServico struct {
	ID               *int64      `json:"id,omitempty"`
	Cliente          string      `json:"cliente"`
	Data             string      `json:"data"`
	Hora             string      `json:"hora"`
	Papel            *string     `json:"papel,omitempty"`
	Tecido           *string     `json:"tecido,omitempty"`
	LarguraTecido    *string     `json:"larguraTecido,omitempty"`
	LarguraImpressao *string     `json:"larguraImpressao,omitempty"`
	TecCliente       bool        `json:"tecCliente"`
	TecSublimatec    bool        `json:"tecSublimatec"`
	SoImpressao      bool        `json:"soImpressao"`
	Calandra         bool        `json:"calandra"`
	Itens            []ItemOrdem `json:"itens"`
}

type ItemOrdem struct {
	ID            *int64  `json:"id,omitempty"`
	NumeroPagina  int     `json:"numeroPagina"`
	NumeroLinha   int     `json:"numeroLinha"`
	Ref           *string `json:"ref,omitempty"`
	Pasta         *string `json:"pasta,omitempty"`
	Metragem      *string `json:"metragem,omitempty"`
	TipoCrop      string  `json:"tipoCrop"`
	CaminhoImagem *string `json:"caminhoImagem,omitempty"`
}

type UploadResponse struct {
	CaminhoImagem string `json:"caminhoImagem"`
	NomeOriginal  string `json:"nomeOriginal"`
	Mensagem      string `json:"mensagem"`
}

type ExisteResponse struct {
	Existe bool `json:"existe"`
}

type ErroResponse struct {
	Erro string `json:"erro"`
}

const (
	cropEsquerda = "ESQUERDA"
	cropDireita  = "DIREITA"
	cropCompleto = "COMPLETO"
)

func cropToWire(c domain.CropType) string {
	switch c {
	case domain.CropRight:
		return cropDireita
	case domain.CropFull:
		return cropCompleto
	default:
		return cropEsquerda
	}
}

// cropFromWire defaults unknown or absent values to left crop, matching the
// backend's own defaulting.
func cropFromWire(s string) domain.CropType {
	switch s {
	case cropDireita:
		return domain.CropRight
	case cropCompleto:
		return domain.CropFull
	default:
		return domain.CropLeft
	}
}

func FromOrder(order domain.Order) OrdemServico {
	itens := make([]ItemOrdem, 0, len(order.Items))
	for _, item := range order.Items {
		itens = append(itens, FromItem(item))
	}

	return OrdemServico{
		ID:               order.ID,
		Cliente:          order.Client,
		Data:             order.Date,
		Hora:             order.Time,
		Papel:            order.Paper,
		Tecido:           order.Fabric,
		LarguraTecido:    order.FabricWidth,
		LarguraImpressao: order.PrintWidth,
		TecCliente:       order.ClientTech,
		TecSublimatec:    order.SublimatecTech,
		SoImpressao:      order.PrintOnly,
		Calandra:         order.Calender,
		Itens:            itens,
	}
}

func (o OrdemServico) ToOrder() domain.Order {
	items := make([]domain.Item, 0, len(o.Itens))
	for _, item := range o.Itens {
		items = append(items, item.ToItem())
	}

	return domain.Order{
		ID:             o.ID,
		Client:         o.Cliente,
		Date:           o.Data,
		Time:           o.Hora,
		Paper:          o.Papel,
		Fabric:         o.Tecido,
		FabricWidth:    o.LarguraTecido,
		PrintWidth:     o.LarguraImpressao,
		ClientTech:     o.TecCliente,
		SublimatecTech: o.TecSublimatec,
		PrintOnly:      o.SoImpressao,
		Calender:       o.Calandra,
		Items:          items,
	}
}

func FromItem(item domain.Item) ItemOrdem {
	return ItemOrdem{
		ID:            item.ID,
		NumeroPagina:  item.PageNumber,
		NumeroLinha:   item.LineNumber,
		Ref:           item.Ref,
		Pasta:         item.Folder,
		Metragem:      item.Length,
		TipoCrop:      cropToWire(item.CropType),
		CaminhoImagem: item.ImagePath,
	}
}

func (i ItemOrdem) ToItem() domain.Item {
	return domain.Item{
		ID:         i.ID,
		PageNumber: i.NumeroPagina,
		LineNumber: i.NumeroLinha,
		Ref:        i.Ref,
		Folder:     i.Pasta,
		Length:     i.Metragem,
		CropType:   cropFromWire(i.TipoCrop),
		ImagePath:  i.CaminhoImagem,
	}
}
