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
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/agrosight/agro-insight-broker/util"
	"github.com/stretchr/testify/assert"
)

func gzipCSV(content string) []byte {
	var buffer bytes.Buffer
	gzipWriter := gzip.NewWriter(&buffer)
	gzipWriter.Write([]byte(content))
	gzipWriter.Close()
	return buffer.Bytes()
}

const redBandCSV = "2,2\n100,200\n300,400\n"
const nirBandCSV = "2,2\n300,400\n500,600\n"

type mockStorageHandler struct {
	objects map[string][]byte
}

func (h mockStorageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := h.objects[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write(body)
}

func newMockStorage() *httptest.Server {
	return httptest.NewServer(mockStorageHandler{objects: map[string][]byte{
		"/red_band.csv.gz": gzipCSV(redBandCSV),
		"/nir_band.csv.gz": gzipCSV(nirBandCSV),
	}})
}

func TestFileSupplier_ReadsBandPairFromHTTPStorage(t *testing.T) {
	server := newMockStorage()
	defer server.Close()

	supplier := NewFileSupplier(StorageConfig{
		BaseURL:   server.URL,
		RedObject: "red_band.csv.gz",
		NIRObject: "nir_band.csv.gz",
	})

	pair, err := supplier.Supply(SupplyOptions{}, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.Equal(t, []float64{100, 200, 300, 400}, pair.Red)
	assert.Equal(t, []float64{300, 400, 500, 600}, pair.NIR)
	assert.Equal(t, 2, pair.Width)
	assert.Equal(t, 2, pair.Height)
}

func TestFileSupplier_ReadsBandPairFromLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "red_band.csv.gz"), gzipCSV(redBandCSV), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "nir_band.csv.gz"), gzipCSV(nirBandCSV), 0644))

	supplier := NewFileSupplier(StorageConfig{
		BaseURL:   dir,
		RedObject: "red_band.csv.gz",
		NIRObject: "nir_band.csv.gz",
	})

	pair, err := supplier.Supply(SupplyOptions{}, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.Len(t, pair.Red, 4)
	assert.Len(t, pair.NIR, 4)
}

func TestFileSupplier_MissingObjectIsAnError(t *testing.T) {
	server := httptest.NewServer(mockStorageHandler{objects: map[string][]byte{}})
	defer server.Close()

	supplier := NewFileSupplier(StorageConfig{
		BaseURL:   server.URL,
		RedObject: "red_band.csv.gz",
		NIRObject: "nir_band.csv.gz",
	})

	pair, err := supplier.Supply(SupplyOptions{}, &util.BasicLogContext{})
	assert.Nil(t, pair)
	assert.NotNil(t, err)
}

func TestFileSupplier_SendsAuthToken(t *testing.T) {
	var receivedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.Write(gzipCSV(redBandCSV))
	}))
	defer server.Close()

	supplier := NewFileSupplier(StorageConfig{
		BaseURL:   server.URL,
		RedObject: "red_band.csv.gz",
		NIRObject: "nir_band.csv.gz",
		AuthToken: "sekrit",
	})

	_, err := supplier.Supply(SupplyOptions{}, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.Equal(t, "Bearer sekrit", receivedAuth)
}

func TestDecodeBandCSV_RejectsBadHeaders(t *testing.T) {
	for _, content := range []string{
		"2\n100,200\n",       // one header field
		"x,2\n100,200\n",     // non-numeric width
		"2,y\n100,200\n",     // non-numeric height
		"0,2\n100,200\n",     // non-positive width
		"2,-1\n100,200\n",    // non-positive height
		"2,2\n100,oops\n",    // non-numeric value
	} {
		_, _, _, err := decodeBandCSV(bytes.NewReader(gzipCSV(content)))
		assert.NotNil(t, err, "content %q", content)
	}
}

func TestDecodeBandCSV_RejectsOversizeDimensions(t *testing.T) {
	for _, content := range []string{
		"2000000000,2000000000\n100,200\n", // absurd on both axes
		"1001,1000\n100,200\n",             // just past the pixel limit
	} {
		_, _, _, err := decodeBandCSV(bytes.NewReader(gzipCSV(content)))
		assert.NotNil(t, err, "content %q", content)
		assert.Contains(t, err.Error(), "pixel limit")
	}
}

func TestDecodeBandCSV_NotGzipIsAnError(t *testing.T) {
	_, _, _, err := decodeBandCSV(bytes.NewReader([]byte(redBandCSV)))
	assert.NotNil(t, err)
}
