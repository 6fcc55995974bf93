// Package pricing selects the applicable price-list version and fare item
// for a route segment on a given date.
package pricing

import (
	"time"

	logrus "github.com/sirupsen/logrus"

	"sofer_terminal/internal/models"
)

// DateLayout is the calendar-date form of PriceList.EffectiveFrom.
const DateLayout = "2006-01-02"

// catalog is the slice of the replica store the resolver reads.
type catalog interface {
	PriceLists() ([]models.PriceList, error)
	ItemsForPriceList(listID int) ([]models.PriceListItem, error)
	StationsForRoute(routeID int, direction string) ([]models.Station, error)
}

// Quote is a resolved fare for one segment.
type Quote struct {
	PriceListID   int     `json:"price_list_id"`
	EffectiveFrom string  `json:"effective_from"`
	FromStationID int     `json:"from_station_id"`
	ToStationID   int     `json:"to_station_id"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}

type Resolver struct {
	catalog catalog
}

func NewResolver(c catalog) *Resolver {
	return &Resolver{catalog: c}
}

// PriceForSegment resolves the fare for fromStationID -> toStationID on
// routeID under the given fare category as of asOf.
//
// The applicable list is the one with the largest effective_from not after
// asOf; lists with unparsable dates are skipped. Within that list the item
// must match the ordered (from, to) pair exactly - direction matters.
//
// A nil Quote with a nil error means no price exists for the segment; that
// is a legitimate outcome, distinct from a store read failure.
func (r *Resolver) PriceForSegment(routeID, fromStationID, toStationID, categoryID int, asOf time.Time) (*Quote, error) {
	lists, err := r.catalog.PriceLists()
	if err != nil {
		return nil, err
	}

	var (
		chosen    *models.PriceList
		chosenDay time.Time
	)
	for i := range lists {
		list := lists[i]
		if list.RouteID != routeID || list.CategoryID != categoryID {
			continue
		}
		day, err := time.Parse(DateLayout, list.EffectiveFrom)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"price_list_id":  list.ID,
				"effective_from": list.EffectiveFrom,
			}).Warn("price list has unparsable effective_from, skipping")
			continue
		}
		if day.After(asOf) {
			continue
		}
		// Most recently activated version wins; on the same activation
		// day the larger id (the later-created list) wins.
		if chosen == nil || day.After(chosenDay) || (day.Equal(chosenDay) && list.ID > chosen.ID) {
			chosen = &lists[i]
			chosenDay = day
		}
	}
	if chosen == nil {
		return nil, nil
	}

	items, err := r.catalog.ItemsForPriceList(chosen.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.FromStationID == fromStationID && item.ToStationID == toStationID {
			return &Quote{
				PriceListID:   chosen.ID,
				EffectiveFrom: chosen.EffectiveFrom,
				FromStationID: fromStationID,
				ToStationID:   toStationID,
				Price:         item.Price,
				Currency:      item.Currency,
			}, nil
		}
	}
	return nil, nil
}

// PriceForSegmentByName resolves station names to ids against the route's
// station set and delegates to PriceForSegment. The lookup uses the
// unordered (direction-less) set: only the ids matter, and restricting to
// the route keeps duplicate station names elsewhere from matching.
func (r *Resolver) PriceForSegmentByName(routeID int, fromName, toName string, categoryID int, asOf time.Time) (*Quote, error) {
	stations, err := r.catalog.StationsForRoute(routeID, "")
	if err != nil {
		return nil, err
	}

	var fromID, toID *int
	for i := range stations {
		st := stations[i]
		if fromID == nil && st.Name == fromName {
			fromID = &st.ID
		}
		if toID == nil && st.Name == toName {
			toID = &st.ID
		}
	}
	if fromID == nil || toID == nil {
		return nil, nil
	}
	return r.PriceForSegment(routeID, *fromID, *toID, categoryID, asOf)
}
