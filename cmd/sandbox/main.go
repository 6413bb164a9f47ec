package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	gravity := flag.Float64("gravity", 160, "downward gravity")
	watch := flag.Bool("watch", false, "hot reload templates from prefabs/templates")
	flag.Parse()

	ebiten.SetWindowSize(windowWidth*2, windowHeight*2)
	ebiten.SetWindowTitle("scene2d sandbox")

	game, err := NewGame(*gravity, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
