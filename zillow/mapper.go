package zillow

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yourorg/aggregator-api/listing"
)

type zResult struct {
	Zpid          listing.StringNumber `json:"zpid"`
	StreetAddress string               `json:"streetAddress"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	Zipcode       listing.StringNumber `json:"zipcode"`
	Address       struct {
		StreetAddress string               `json:"streetAddress"`
		City          string               `json:"city"`
		State         string               `json:"state"`
		Zipcode       listing.StringNumber `json:"zipcode"`
	} `json:"address"` // newer payloads nest the address
	Price          float64 `json:"price"`
	Bedrooms       float64 `json:"bedrooms"`
	Bathrooms      float64 `json:"bathrooms"`
	LivingArea     float64 `json:"livingArea"`
	YearBuilt      int     `json:"yearBuilt"`
	LotAreaValue   float64 `json:"lotAreaValue"`
	LotAreaUnit    string  `json:"lotAreaUnit"`
	HomeType       string  `json:"homeType"`
	HomeStatus     string  `json:"homeStatus"`
	ImgSrc         string  `json:"imgSrc"`
	CarouselPhotos []struct {
		URL string `json:"url"`
	} `json:"carouselPhotos"`
	DatePosted   string `json:"datePosted"`
	DaysOnZillow int    `json:"daysOnZillow"`
	Description  string `json:"description"`
	Attribution  struct {
		MLSID      string `json:"mlsId"`
		AgentName  string `json:"agentName"`
		AgentPhone string `json:"agentPhoneNumber"`
		Brokerage  string `json:"brokerName"`
	} `json:"attributionInfo"`
}

func mapPayload(raw []byte) ([]listing.Listing, error) {
	var root struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}

	out := make([]listing.Listing, 0, len(root.Results))
	for _, item := range root.Results {
		var r zResult
		if err := json.Unmarshal(item, &r); err != nil {
			continue // malformed record, keep siblings
		}
		out = append(out, mapResult(r))
	}
	return out, nil
}

func mapResult(r zResult) listing.Listing {
	photos := make([]string, 0, len(r.CarouselPhotos)+1)
	if r.ImgSrc != "" {
		photos = append(photos, r.ImgSrc)
	}
	for _, ph := range r.CarouselPhotos {
		if ph.URL != "" && ph.URL != r.ImgSrc {
			photos = append(photos, ph.URL)
		}
	}

	dom := listing.DaysOnMarketSince(parseDatePosted(r.DatePosted))
	if dom == 0 {
		dom = listing.FirstPositive(r.DaysOnZillow)
	}

	l := listing.Listing{
		ID: listing.QualifyID(sourceID, string(r.Zpid)),
		Address: listing.FirstNonEmpty(
			r.StreetAddress, r.Address.StreetAddress),
		City:               listing.FirstNonEmpty(r.City, r.Address.City),
		State:              listing.FirstNonEmpty(r.State, r.Address.State),
		Zip:                listing.FirstNonEmpty(string(r.Zipcode), string(r.Address.Zipcode)),
		Price:              listing.FirstPositive(int(r.Price)),
		Beds:               listing.FirstPositive(int(r.Bedrooms)),
		Baths:              listing.FirstPositive(int(r.Bathrooms)),
		LivingAreaSqft:     listing.FirstPositive(int(r.LivingArea)),
		YearBuilt:          listing.FirstPositive(r.YearBuilt),
		PropertyType:       r.HomeType,
		Status:             listing.FirstNonEmpty(strings.ToLower(r.HomeStatus), "for_sale"),
		Photos:             photos,
		Description:        r.Description,
		MLSNumber:          r.Attribution.MLSID,
		DaysOnMarket:       dom,
		LotSizeDescription: lotDescription(r.LotAreaValue, r.LotAreaUnit),
		SourceName:         sourceID,
	}
	if r.Attribution.AgentName != "" || r.Attribution.Brokerage != "" {
		l.Agent = &listing.Agent{
			Name:      r.Attribution.AgentName,
			Phone:     r.Attribution.AgentPhone,
			Brokerage: r.Attribution.Brokerage,
		}
	}
	return l
}

// lotDescription handles Zillow reporting lot area in either sqft or acres.
func lotDescription(value float64, unit string) string {
	if value <= 0 {
		return ""
	}
	if strings.EqualFold(unit, "acres") {
		return fmt.Sprintf("%.2f acres", value)
	}
	return listing.AcresDescription(value)
}

func parseDatePosted(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
