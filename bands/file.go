// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bands

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agrosight/agro-insight-broker/util"
)

// StorageConfig is the explicit configuration for raster band storage.
// It is passed into NewFileSupplier by the caller; nothing here is read
// from ambient global state.
type StorageConfig struct {
	// BaseURL is an http(s) URL or a local directory containing the
	// band objects
	BaseURL string
	// RedObject and NIRObject are the fixed object names of the two
	// band files. They are not location-dependent.
	RedObject string
	NIRObject string
	// AuthToken, when set, is sent as a bearer token on http requests
	AuthToken string
}

// maxBandPixels bounds the pixel count a band object may declare in its
// header. It matches the reducer's processing cap; a larger declaration
// is a malformed or hostile object, not a workable raster, and must not
// drive an allocation.
const maxBandPixels = 1000000

// FileSupplier retrieves both bands from raster storage. Band objects
// are gzip-compressed CSV: the first record is "width,height", each
// remaining record is one raster row of reflectance values.
type FileSupplier struct {
	config StorageConfig
}

// NewFileSupplier creates a supplier for the given storage configuration
func NewFileSupplier(config StorageConfig) *FileSupplier {
	return &FileSupplier{config: config}
}

// Supply implements the Supplier interface
func (s *FileSupplier) Supply(options SupplyOptions, ctx util.LogContext) (*BandPair, error) {
	red, redWidth, redHeight, err := s.readBandObject(s.config.RedObject, ctx)
	if err != nil {
		return nil, err
	}
	nir, nirWidth, nirHeight, err := s.readBandObject(s.config.NIRObject, ctx)
	if err != nil {
		return nil, err
	}

	if redWidth != nirWidth || redHeight != nirHeight {
		util.LogAlert(ctx, fmt.Sprintf("Band dimension mismatch: red %dx%d vs NIR %dx%d; using red band dimensions",
			redWidth, redHeight, nirWidth, nirHeight))
	}

	return &BandPair{
		Red:    red,
		NIR:    nir,
		Width:  redWidth,
		Height: redHeight,
		Source: "file:" + s.config.BaseURL,
	}, nil
}

func (s *FileSupplier) readBandObject(object string, ctx util.LogContext) ([]float64, int, int, error) {
	objectURL := s.objectURL(object)

	util.LogAudit(ctx, util.LogAuditInput{Actor: "bands/FileSupplier", Action: "GET", Actee: objectURL, Message: "Reading raster band object", Severity: util.INFO})
	rawReader, err := s.openReader(objectURL)
	if err != nil {
		return nil, 0, 0, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to open raster band object %v. ", objectURL), err)
	}
	defer rawReader.Close()

	values, width, height, err := decodeBandCSV(rawReader)
	if err != nil {
		return nil, 0, 0, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to decode raster band object %v. ", objectURL), err)
	}

	if len(values) != width*height {
		util.LogAlert(ctx, fmt.Sprintf("Band object %v declares %dx%d but contains %d values", objectURL, width, height, len(values)))
	}

	return values, width, height, nil
}

func (s *FileSupplier) objectURL(object string) string {
	base := s.config.BaseURL
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return strings.TrimSuffix(base, "/") + "/" + object
	}
	return filepath.Join(base, object)
}

func (s *FileSupplier) openReader(objectURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(objectURL, "http://") || strings.HasPrefix(objectURL, "https://") {
		request, err := http.NewRequest("GET", objectURL, nil)
		if err != nil {
			return nil, err
		}
		if s.config.AuthToken != "" {
			request.Header.Set("Authorization", "Bearer "+s.config.AuthToken)
		}
		response, err := util.HTTPClient().Do(request)
		if err != nil {
			return nil, err
		}
		if response.StatusCode != http.StatusOK {
			response.Body.Close()
			return nil, util.HTTPErr{Status: response.StatusCode, Message: fmt.Sprintf("Raster storage returned %v for %v", response.Status, objectURL)}
		}
		return response.Body, nil
	}

	return os.Open(filepath.Clean(objectURL))
}

// decodeBandCSV reads a gzip CSV band object: a "width,height" header
// record followed by rows of reflectance values
func decodeBandCSV(rawReader io.Reader) ([]float64, int, int, error) {
	gzipReader, err := gzip.NewReader(rawReader)
	if err != nil {
		return nil, 0, 0, err
	}
	defer gzipReader.Close()

	csvReader := csv.NewReader(gzipReader)
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(header) != 2 {
		return nil, 0, 0, fmt.Errorf("expected a width,height header record, got %d fields", len(header))
	}
	width, err := strconv.Atoi(strings.TrimSpace(header[0]))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("invalid band width %q: %v", header[0], err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(header[1]))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("invalid band height %q: %v", header[1], err)
	}
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("band dimensions must be positive, got %dx%d", width, height)
	}
	if width > maxBandPixels || height > maxBandPixels || width*height > maxBandPixels {
		return nil, 0, 0, fmt.Errorf("band dimensions %dx%d exceed the %d pixel limit", width, height, maxBandPixels)
	}

	values := make([]float64, 0, width*height)

doneReading:
	for {
		record, readErr := csvReader.Read()
		switch readErr {
		case nil:
			for _, field := range record {
				value, parseErr := strconv.ParseFloat(strings.TrimSpace(field), 64)
				if parseErr != nil {
					return nil, 0, 0, fmt.Errorf("invalid reflectance value %q: %v", field, parseErr)
				}
				values = append(values, value)
			}
		case io.EOF:
			break doneReading
		default:
			return nil, 0, 0, readErr
		}
	}

	return values, width, height, nil
}
