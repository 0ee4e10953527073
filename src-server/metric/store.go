package metric

import (
	"context"
	"time"

	"caldeck/src-server/utils"
)

func storeLoad(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.EventStore.Load(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
