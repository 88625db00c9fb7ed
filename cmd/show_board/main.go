package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/cubello/internal/models"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 64 characters of '.', 'x' and 'o'")
	flag.Parse()

	board := models.NewBoardStart()

	if *boardString != "" {
		var err error
		board, err = models.NewBoardFromString(*boardString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	board.Print()
}
