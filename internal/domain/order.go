package domain

import "time"

type Order struct {
	ID             *int64
	Client         string `validate:"required"`
	Date           string `validate:"required,datetime=2006-01-02"`
	Time           string `validate:"required,datetime=15:04"`
	Paper          *string
	Fabric         *string
	FabricWidth    *string
	PrintWidth     *string
	ClientTech     bool
	SublimatecTech bool
	PrintOnly      bool
	Calender       bool
	Items          []Item
}

// Flag names one of the four print-mode checkboxes.
type Flag string

const (
	FlagClientTech     Flag = "clientTech"
	FlagSublimatecTech Flag = "sublimatecTech"
	FlagPrintOnly      Flag = "printOnly"
	FlagCalender       Flag = "calender"
)

// exclusivePairs maps each flag to the one it cannot be combined with.
// Setting a flag to true forces its partner to false; setting a flag to
// false never touches the partner.
var exclusivePairs = map[Flag]Flag{
	FlagClientTech:     FlagSublimatecTech,
	FlagSublimatecTech: FlagClientTech,
	FlagPrintOnly:      FlagCalender,
	FlagCalender:       FlagPrintOnly,
}

// NewOrder builds the order a fresh editing session starts from: today's
// date and time, no header data, one page of default rows.
func NewOrder(now time.Time) Order {
	items := make([]Item, 0, LinesPerPage)
	for line := 0; line < LinesPerPage; line++ {
		items = append(items, DefaultItem(1, line))
	}

	return Order{
		Date:  now.Format("2006-01-02"),
		Time:  now.Format("15:04"),
		Items: items,
	}
}

// SetFlag returns the order with the flag applied and the mutual-exclusion
// rule enforced in the same update.
func SetFlag(order Order, flag Flag, value bool) Order {
	order = setFlagValue(order, flag, value)
	if value {
		if partner, ok := exclusivePairs[flag]; ok {
			order = setFlagValue(order, partner, false)
		}
	}
	return order
}

func setFlagValue(order Order, flag Flag, value bool) Order {
	switch flag {
	case FlagClientTech:
		order.ClientTech = value
	case FlagSublimatecTech:
		order.SublimatecTech = value
	case FlagPrintOnly:
		order.PrintOnly = value
	case FlagCalender:
		order.Calender = value
	}
	return order
}

// Flag reads the named checkbox.
func (o Order) Flag(flag Flag) bool {
	switch flag {
	case FlagClientTech:
		return o.ClientTech
	case FlagSublimatecTech:
		return o.SublimatecTech
	case FlagPrintOnly:
		return o.PrintOnly
	case FlagCalender:
		return o.Calender
	}
	return false
}

// TotalPages derives the page count from the item collection. An order
// always has at least one page.
func (o Order) TotalPages() int {
	total := 1
	for _, item := range o.Items {
		if item.PageNumber > total {
			total = item.PageNumber
		}
	}
	return total
}
