package model

import "time"

// TimestampFormat is the format used for response timestamps
const TimestampFormat = time.RFC3339
