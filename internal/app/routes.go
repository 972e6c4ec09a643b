package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	base := a.config.BasePath
	game := handlers.NewGameHandler(
		a.log, a.sessions, config.Upgrader(), createRand(),
	)

	a.router.HandleFunc("GET "+base+"/status", handlers.Status)
	a.router.HandleFunc("GET "+base+"/levels", game.Levels)
	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST "+base+"/game/{id}/restart", game.Restart)
	a.router.HandleFunc("POST "+base+"/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("POST "+base+"/game/{id}/batch", game.Batch)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.Connect)
}
