package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/agrosight/agro-insight-broker/gazetteer"
	"github.com/agrosight/agro-insight-broker/util"

	_ "github.com/lib/pq"
	cli "gopkg.in/urfave/cli.v1"
)

const ingestFrequencyEnv = "GAZETTEER_INGEST_FREQUENCY"
const defaultIngestFrequency = 24 * time.Hour

//landmarkIngestScheduleAction starts the worker process and an http server
func landmarkIngestScheduleAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})
	portStr := getPortStr()

	gazetteerURL := util.GetGazetteerURL()
	sourceIsGzip := strings.HasSuffix(strings.ToLower(gazetteerURL), "gz")
	importer := gazetteer.NewImporter(gazetteerURL, sourceIsGzip, getDbConnectionFunc)

	//Create the channel that sends the start/stop messages to the Importer.
	messageChan := make(chan string, 5) //small buffer.

	//Start the sleep/ingest loop.
	go importer.ImportWhile(messageChan, getTimerDuration(), logContext)

	//Set up an http router
	router := mux.NewRouter()
	router.HandleFunc("/ingest/", func(resp http.ResponseWriter, req *http.Request) {
		handleImportStatus(importer, resp, req)
	})
	router.HandleFunc("/ingest/start", func(resp http.ResponseWriter, req *http.Request) {
		handleForceStartIngest(importer, messageChan, resp, req)
	})

	log.Println("Listening on port", portStr)
	log.Fatal(http.ListenAndServe(portStr, router))
}

//handleImportStatus requests the status from the importer and writes it out.
func handleImportStatus(imp *gazetteer.Importer, writer http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(writer, imp.GetStatus())
}

//handleForceStartIngest sends a "begin" message to the importer and returns the new status to the user.
func handleForceStartIngest(imp *gazetteer.Importer, messageChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case messageChan <- gazetteer.BeginIngestJobMessage:
		fmt.Fprintln(writer, "Begin job request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting request.")
	}
	fmt.Fprintln(writer, imp.GetStatus())
}

func getTimerDuration() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(ingestFrequencyEnv))

	if duration < (time.Minute) {
		log.Printf("Specified duration of %v is too small. Setting to default.", duration)
		duration = defaultIngestFrequency
	}

	return duration
}
