package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/Nefnief-tech/transit-app-test/internal/models"
)

const (
	elemContainer = "Buses"
	elemVehicle   = "Bus"
	elemError     = "Error"
)

type xmlRouteMap struct {
	Href string `xml:"Href"`
}

type xmlVehicle struct {
	VehicleNo    string      `xml:"VehicleNo"`
	RouteNo      string      `xml:"RouteNo"`
	Direction    string      `xml:"Direction"`
	Destination  string      `xml:"Destination"`
	Pattern      string      `xml:"Pattern"`
	Latitude     string      `xml:"Latitude"`
	Longitude    string      `xml:"Longitude"`
	RecordedTime string      `xml:"RecordedTime"`
	RouteMap     xmlRouteMap `xml:"RouteMap"`
}

func (v xmlVehicle) toRecord() (models.VehicleRecord, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(v.Latitude), 64)
	if err != nil {
		return models.VehicleRecord{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(v.Longitude), 64)
	if err != nil {
		return models.VehicleRecord{}, false
	}

	rec, err := models.NewVehicleRecord(models.VehicleFields{
		VehicleID:   strings.TrimSpace(v.VehicleNo),
		RouteID:     strings.TrimSpace(v.RouteNo),
		Direction:   v.Direction,
		Destination: strings.TrimSpace(v.Destination),
		Pattern:     strings.TrimSpace(v.Pattern),
		Latitude:    lat,
		Longitude:   lon,
		RecordedAt:  strings.TrimSpace(v.RecordedTime),
		MapHref:     strings.TrimSpace(v.RouteMap.Href),
	})
	return rec, err == nil
}

type xmlError struct {
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

func parseXML(body []byte) Outcome {
	d := xml.NewDecoder(bytes.NewReader(body))
	d.CharsetReader = charset.NewReaderLabel

	var (
		root         string
		sawContainer bool
		upstreamErr  *xmlError
		vehicles     []models.VehicleRecord
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return unparseable(FormatXML)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if root == "" {
			root = se.Name.Local
		}

		switch se.Name.Local {
		case elemContainer:
			sawContainer = true
		case elemError:
			var e xmlError
			if err := d.DecodeElement(&e, &se); err != nil {
				return unparseable(FormatXML)
			}
			if upstreamErr == nil {
				upstreamErr = &e
			}
		case elemVehicle:
			var v xmlVehicle
			if err := d.DecodeElement(&v, &se); err != nil {
				return unparseable(FormatXML)
			}
			if rec, ok := v.toRecord(); ok {
				vehicles = append(vehicles, rec)
			}
		}
	}

	if root == "" {
		return unparseable(FormatXML)
	}
	if upstreamErr != nil {
		return upstreamError(FormatXML, strings.TrimSpace(upstreamErr.Code), strings.TrimSpace(upstreamErr.Message))
	}
	if len(vehicles) > 0 {
		return success(FormatXML, vehicles)
	}
	if sawContainer {
		return success(FormatXML, nil)
	}
	return unparseable(FormatXML)
}
