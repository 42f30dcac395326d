package main

import "github.com/redactyl/pdfscrub/cmd/pdfscrub"

func main() { pdfscrub.Execute() }
