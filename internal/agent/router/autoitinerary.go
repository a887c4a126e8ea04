package router

import (
	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
)

// shouldAutoGenerate decides whether to generate the itinerary proactively:
// both searches done, all itinerary inputs known, and no itinerary yet. If
// any field is missing the loop falls through to the model so it can ask the
// user. ItineraryGenerated guards re-entry, so a later re-search never
// re-triggers generation.
func shouldAutoGenerate(s *model.TripState) bool {
	return s.FlightInfoGathered &&
		s.HotelInfoGathered &&
		!s.ItineraryGenerated &&
		s.Destination != "" &&
		s.DepartureDate != "" &&
		s.ReturnDate != "" &&
		s.Interests != ""
}
