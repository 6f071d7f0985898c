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

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/agrosight/agro-insight-broker/bands"
	"github.com/agrosight/agro-insight-broker/crops"
	"github.com/agrosight/agro-insight-broker/gazetteer"
	"github.com/agrosight/agro-insight-broker/gazetteer/db"
	"github.com/agrosight/agro-insight-broker/ndvi"
	"github.com/agrosight/agro-insight-broker/util"
	"github.com/agrosight/agro-insight-broker/weather"
	cli "gopkg.in/urfave/cli.v1"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

// createBandSupplier picks the band source from the environment: real
// raster storage when configured, simulated data otherwise
func createBandSupplier(ctx util.LogContext) bands.Supplier {
	if forced, _ := util.IsSimulatedDataForced(); forced {
		util.LogInfo(ctx, "FORCE_SIMULATED_DATA is set; using simulated band data")
		return bands.NewSimulatedSupplier()
	}

	storageURL := util.GetRasterStorageURL()
	if storageURL == "" {
		return bands.NewSimulatedSupplier()
	}

	return bands.NewFileSupplier(bands.StorageConfig{
		BaseURL:   storageURL,
		RedObject: util.GetRedBandObject(),
		NIRObject: util.GetNirBandObject(),
		AuthToken: util.GetRasterAuthToken(),
	})
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})

	supplier := createBandSupplier(ctx)
	router.Handle("/ndvi", ndvi.NewInsightHandler(supplier))
	router.Handle("/crops", crops.NewSuggestionHandler(supplier))
	router.Handle("/weather", weather.NewSnapshotHandler())

	var connectionProvider db.ConnectionProvider
	if databaseIsConfigured() {
		connectionProvider = db.ConnectionProvider(getDbConnectionFunc)
	} else {
		util.LogInfo(ctx, "No database configured; landmark lookups will use the in-memory map")
	}

	locationHandler, err := gazetteer.NewLocationHandler(connectionProvider)
	if err != nil {
		return nil, err
	}
	router.Handle("/location", locationHandler)

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if len(util.GetGazetteerURL()) != 0 {
		util.LogInfo(logContext, fmt.Sprintf("Starting landmark map refresh loop for source: '%s'", util.GetGazetteerURL()))
		go gazetteer.UpdateLandmarkMapOnTicker(logContext, 30*time.Minute)
	} else {
		util.LogAlert(logContext, "No gazetteer URL found, not starting landmark map refresh loop")
	}

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
