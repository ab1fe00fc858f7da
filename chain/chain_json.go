package chain

import (
	"encoding/json"
	"time"

	"github.com/johnayoung/go-optionlab/primitives"
)

// jsonOptionData mirrors OptionData field-for-field except for Delta, which
// Positive's JSON codec can't carry since it can go negative; Decimal has no
// MarshalJSON of its own, so the wire form is a plain JSON number.
type jsonOptionData struct {
	StrikePrice       primitives.Positive  `json:"strike_price"`
	CallBid           *primitives.Positive `json:"call_bid"`
	CallAsk           *primitives.Positive `json:"call_ask"`
	PutBid            *primitives.Positive `json:"put_bid"`
	PutAsk            *primitives.Positive `json:"put_ask"`
	ImpliedVolatility primitives.Positive  `json:"implied_volatility"`
	Delta             float64              `json:"delta"`
	Volume            int64                `json:"volume"`
	OpenInterest      int64                `json:"open_interest"`
}

// MarshalJSON implements spec §6's option-row wire contract: unavailable
// quotes marshal as null rather than being omitted, so a consumer can tell
// "no quote" from "quote not requested".
func (o OptionData) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonOptionData{
		StrikePrice:       o.Strike,
		CallBid:           o.CallBid,
		CallAsk:           o.CallAsk,
		PutBid:            o.PutBid,
		PutAsk:            o.PutAsk,
		ImpliedVolatility: o.ImpliedVolatility,
		Delta:             o.Delta.Float64(),
		Volume:            o.Volume,
		OpenInterest:      o.OpenInterest,
	})
}

// UnmarshalJSON implements the inverse of MarshalJSON, ignoring any unknown
// fields present in the source document.
func (o *OptionData) UnmarshalJSON(data []byte) error {
	var raw jsonOptionData
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Strike = raw.StrikePrice
	o.CallBid = raw.CallBid
	o.CallAsk = raw.CallAsk
	o.PutBid = raw.PutBid
	o.PutAsk = raw.PutAsk
	o.ImpliedVolatility = raw.ImpliedVolatility
	o.Delta = primitives.NewDecimalFromFloat(raw.Delta)
	o.Volume = raw.Volume
	o.OpenInterest = raw.OpenInterest
	return nil
}

// jsonOptionChain mirrors OptionChain, representing the expiration as an
// RFC3339 timestamp: a chain snapshot describes a specific dated file, so
// the absolute-instant form of ExpirationDate is the natural wire shape
// even though the in-memory type also supports a relative day count.
type jsonOptionChain struct {
	Symbol          string              `json:"symbol"`
	UnderlyingPrice primitives.Positive `json:"underlying_price"`
	ExpirationDate  time.Time           `json:"expiration_date"`
	Options         []OptionData        `json:"options"`
}

// MarshalJSON implements the OptionChain wire contract of spec §6.
func (c OptionChain) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonOptionChain{
		Symbol:          c.Symbol,
		UnderlyingPrice: c.UnderlyingPrice,
		ExpirationDate:  c.ExpirationDate.AsTime(primitives.Now()).Time(),
		Options:         c.Options,
	})
}

// UnmarshalJSON implements the inverse of MarshalJSON, ignoring unknown
// top-level fields.
func (c *OptionChain) UnmarshalJSON(data []byte) error {
	var raw jsonOptionChain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Symbol = raw.Symbol
	c.UnderlyingPrice = raw.UnderlyingPrice
	c.ExpirationDate = primitives.ExpirationAt(primitives.NewTime(raw.ExpirationDate))
	c.Options = raw.Options
	return nil
}
