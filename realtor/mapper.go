package realtor

import (
	"encoding/json"
	"time"

	"github.com/yourorg/aggregator-api/listing"
)

type rAddress struct {
	Line       string `json:"line"`
	City       string `json:"city"`
	StateCode  string `json:"state_code"`
	PostalCode string `json:"postal_code"`
}

type rProperty struct {
	PropertyID listing.StringNumber `json:"property_id"`
	ListingID  listing.StringNumber `json:"listing_id"`
	ListPrice  int                  `json:"list_price"`
	Price      int                  `json:"price"` // older payloads
	Status     string               `json:"status"`
	ListDate   string               `json:"list_date"`
	Location   struct {
		Address rAddress `json:"address"`
	} `json:"location"`
	Address     rAddress `json:"address"` // older payloads nest one level up
	Description struct {
		Beds      int     `json:"beds"`
		Baths     float64 `json:"baths"`
		BathsFull int     `json:"baths_full"`
		Sqft      int     `json:"sqft"`
		LotSqft   float64 `json:"lot_sqft"`
		YearBuilt int     `json:"year_built"`
		Type      string  `json:"type"`
		Text      string  `json:"text"`
		Garage    int     `json:"garage"`
		Pool      bool    `json:"pool"`
	} `json:"description"`
	Flags struct {
		IsWaterfront bool `json:"is_waterfront"`
	} `json:"flags"`
	PrimaryPhoto struct {
		Href string `json:"href"`
	} `json:"primary_photo"`
	Photos []struct {
		Href string `json:"href"`
	} `json:"photos"`
	Source struct {
		ListingID listing.StringNumber `json:"listing_id"`
		MLSNumber listing.StringNumber `json:"id"`
	} `json:"source"`
	Advertisers []struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phones []struct {
			Number string `json:"number"`
		} `json:"phones"`
		Broker struct {
			Name string `json:"name"`
		} `json:"broker"`
	} `json:"advertisers"`
}

// mapPayload maps a Realtor search payload. The product has shipped results
// under both "properties" and "data.home_search.results"; try each. Records
// that fail to decode individually are skipped, siblings survive.
func mapPayload(raw []byte) ([]listing.Listing, error) {
	var root struct {
		Properties []json.RawMessage `json:"properties"`
		Data       struct {
			HomeSearch struct {
				Results []json.RawMessage `json:"results"`
			} `json:"home_search"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	items := root.Properties
	if len(items) == 0 {
		items = root.Data.HomeSearch.Results
	}

	out := make([]listing.Listing, 0, len(items))
	for _, item := range items {
		var p rProperty
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		out = append(out, mapProperty(p))
	}
	return out, nil
}

func mapProperty(p rProperty) listing.Listing {
	addr := p.Location.Address
	if addr.Line == "" {
		addr = p.Address
	}

	baths := int(p.Description.Baths)
	if baths == 0 {
		baths = p.Description.BathsFull
	}

	photos := make([]string, 0, len(p.Photos)+1)
	if p.PrimaryPhoto.Href != "" {
		photos = append(photos, p.PrimaryPhoto.Href)
	}
	for _, ph := range p.Photos {
		if ph.Href != "" && ph.Href != p.PrimaryPhoto.Href {
			photos = append(photos, ph.Href)
		}
	}

	l := listing.Listing{
		ID: listing.QualifyID(sourceID, listing.FirstNonEmpty(
			string(p.PropertyID), string(p.ListingID), string(p.Source.ListingID))),
		Address:            addr.Line,
		City:               addr.City,
		State:              addr.StateCode,
		Zip:                addr.PostalCode,
		Price:              listing.FirstPositive(p.ListPrice, p.Price),
		Beds:               listing.FirstPositive(p.Description.Beds),
		Baths:              listing.FirstPositive(baths),
		LivingAreaSqft:     listing.FirstPositive(p.Description.Sqft),
		YearBuilt:          listing.FirstPositive(p.Description.YearBuilt),
		PropertyType:       p.Description.Type,
		Status:             listing.FirstNonEmpty(p.Status, "for_sale"),
		Photos:             photos,
		Description:        p.Description.Text,
		MLSNumber:          string(p.Source.MLSNumber),
		DaysOnMarket:       listing.DaysOnMarketSince(parseListDate(p.ListDate)),
		LotSizeDescription: listing.AcresDescription(p.Description.LotSqft),
		GarageSpaces:       listing.FirstPositive(p.Description.Garage),
		HasPool:            p.Description.Pool,
		IsWaterfront:       p.Flags.IsWaterfront,
		SourceName:         sourceID,
	}
	if len(p.Advertisers) > 0 {
		ad := p.Advertisers[0]
		agent := listing.Agent{Name: ad.Name, Email: ad.Email, Brokerage: ad.Broker.Name}
		if len(ad.Phones) > 0 {
			agent.Phone = ad.Phones[0].Number
		}
		if agent.Name != "" || agent.Brokerage != "" {
			l.Agent = &agent
		}
	}
	return l
}

func parseListDate(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
