package main

import "github.com/willy-it-wonka/Bookshelf-backend-sub000/cmd"

func main() {
	cmd.Execute()
}
