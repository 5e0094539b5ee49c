package handler

import (
	"net/http"
	"sync"

	"innkeep/config"
	"innkeep/di"
	"innkeep/shared/logger"
)

var (
	app  *di.App
	once sync.Once
)

// Handler is the serverless entrypoint. The app is built on the first request
// and reused while the instance stays warm. Lapsed holds are reclaimed on
// reads since no sweeper runs here.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		app = di.InitializeApp()
	})

	app.HTTP.ServeHTTP(w, r)
}
