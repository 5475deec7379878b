package main

import (
	"os"

	"github.com/airenas/speechsubmit/internal/app/submit"
	"github.com/labstack/gommon/color"
)

func main() {
	printBanner()
	submit.Execute()
}

var (
	version string
)

func printBanner() {
	banner := `
                     __    
   _______  ______  / /_  
  / ___/ / / / __ \/ __ \ 
 (__  ) /_/ / /_/ / / / / 
/____/\__,_/_.___/_/ /_/  v: %s
%s
________________________________________________________

`
	cl := color.New()
	cl.SetOutput(os.Stderr)
	cl.Printf(banner, cl.Red(version), cl.Green("speech gateway job submitter"))
}
