package main

import (
	"fmt"
	"os"

	"calcvoices/engine/actors"
	"calcvoices/engine/conductor"
	"calcvoices/engine/library"
	"calcvoices/messaging/report"
	"github.com/eiannone/keyboard"
)

// cliListener lets the operator page through a finished run. It listens for keypresses and
// prints the matching report section.
func cliListener(log library.FatalLogger, config actors.RunConfig, res *conductor.Result) {
	fmt.Println("VIEW RUN " + res.RunID + ":\nh: token holders\nl: broken delegations by graph\na: assembly voices\nb: broken council delegations\nr: council roots\ne: expected council\no: current council\nd: difference\nc: run config\nq: to quit")
	p := report.New(os.Stdout)
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			library.LogCLI(log, err, library.Serious)
			return
		}
		str := string(r)
		switch str {
		default:
			if k == keyboard.KeyEnter {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to any view. See main.cliListener for more details.")
		case "h":
			p.Holders(config.Token, res.Registry.All()[:res.Holders])
		case "l":
			p.Resolution(res.Summaries)
		case "a":
			p.Assembly(res.Registry, res.Aggregator)
		case "b":
			p.Broken(res.Partition, res.Aggregator)
		case "r":
			p.Roots(res.Partition, res.Aggregator)
		case "e":
			p.Expected(res.Members)
		case "o":
			p.Current(res.Observed)
		case "d":
			p.Difference(res.Plan)
		case "c":
			fmt.Println("CURRENT CONFIG")
			fmt.Printf("%+v\n", config)
		case "q":
			return
		}
		if err = p.Err(); err != nil {
			library.LogCLI(log, err, library.Serious)
			return
		}
	}
}
