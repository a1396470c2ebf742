package models_test

import (
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCoordinatesString(t *testing.T) {
	coords := models.Coordinates{Latitude: 37.4224764, Longitude: -122.0842499}
	assert.Equal(t, "37.4224764,-122.0842499", coords.String())
}

func TestAddressRecordFields(t *testing.T) {
	record := models.AddressRecord{
		ID: 7, Street: "Elm Street 1", Settlement: "Springfield", Region: "IL", Postcode: "62704",
	}
	assert.Equal(t, []string{"Elm Street 1", "Springfield", "IL", "62704"}, record.Fields())
}
