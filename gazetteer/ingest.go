package gazetteer

import (
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agrosight/agro-insight-broker/gazetteer/db"
	"github.com/agrosight/agro-insight-broker/util"
)

// BeginIngestJobMessage requests an immediate ingest run when sent to
// the importer's message channel
const BeginIngestJobMessage = "begin_ingest"

// Importer manages the state for a landmark ingest job. Mainly useful
// when launching the job on an interval.
type Importer struct {
	gazetteerURL   string
	sourceIsGzip   bool
	dbConnProvider db.ConnectionProvider
	statusChan     chan chan string
}

// NewImporter initializes a new importer
func NewImporter(url string, useGzip bool, dbConnProvider db.ConnectionProvider) *Importer {
	return &Importer{
		gazetteerURL:   url,
		sourceIsGzip:   useGzip,
		dbConnProvider: dbConnProvider,
		statusChan:     make(chan chan string, 10)}
}

// ImportWhile performs the Import() task on a schedule and waits for a
// channel. This is blocking; it exits when messageChan is closed and any
// in-progress job completes.
func (imp *Importer) ImportWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration, ctx util.LogContext) {
	previousStatus := "\tNone"
	var nextScheduledStartTime time.Time
	var scheduleTimer *time.Timer

	for {
		if scheduleTimer == nil {
			scheduleTimer = time.NewTimer(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}

		select {
		case <-scheduleTimer.C:
			scheduleTimer = nil
			previousStatus = imp.Import(ctx)
		case msg, ok := <-messageChan:
			if !ok {
				return // The message channel has been closed.
			}
			if msg == BeginIngestJobMessage {
				scheduleTimer = nil
				previousStatus = imp.Import(ctx)
			}
		case respChan := <-imp.statusChan:
			select {
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): // good
			default: // ignore
			}
		}
	}
}

// GetStatus is a thread safe way to get information about the import operation
func (imp *Importer) GetStatus() string {
	responseChan := make(chan string, 1) // Must have a buffer; the job loop won't wait if it can't send
	imp.statusChan <- responseChan
	return <-responseChan
}

// Import performs one read of the landmark source and updates the index
func (imp *Importer) Import(ctx util.LogContext) (result string) {
	start := time.Now()

	sourceReader, err := openReader(imp.gazetteerURL)
	if err != nil {
		util.LogSimpleErr(ctx, "Could not open the landmark source file/url. ", err)
		return "Failed: " + err.Error()
	}
	defer sourceReader.Close()

	var mainReader io.Reader = sourceReader
	if imp.sourceIsGzip || strings.HasSuffix(imp.gazetteerURL, ".gz") {
		archiveReader, zipErr := gzip.NewReader(sourceReader)
		if zipErr != nil {
			util.LogSimpleErr(ctx, "Error opening gzip archive. ", zipErr)
			return "Failed: " + zipErr.Error()
		}
		defer archiveReader.Close()
		mainReader = archiveReader
	}

	database, err := imp.dbConnProvider(ctx)
	if err != nil {
		util.LogSimpleErr(ctx, "Could not open database connection. ", err)
		return "Failed: " + err.Error()
	}
	defer database.Close()

	count, err := imp.ingest(mainReader, database)
	if err != nil {
		util.LogSimpleErr(ctx, "Landmark ingest failed. ", err)
		return "Failed: " + err.Error()
	}

	result = fmt.Sprintf("Ingested %d landmarks; duration: %fs", count, time.Now().Sub(start).Seconds())
	util.LogInfo(ctx, result)
	return
}

func (imp *Importer) ingest(reader io.Reader, database *sql.DB) (int, error) {
	landmarks, err := readLandmarkCSV(reader)
	if err != nil {
		return 0, err
	}

	tx, err := database.Begin()
	if err != nil {
		return 0, err
	}

	insertStatement, err := db.PrepareLandmarkInsert(tx)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, landmark := range landmarks {
		if _, err = insertStatement.Exec(landmark.Name, landmark.Category, landmark.Latitude, landmark.Longitude); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	return len(landmarks), tx.Commit()
}
