// Command keygen prints an activation key for a month, quarter or year license.
//
//	keygen [month|quarter|year]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ytget/video-batch-uploader/internal/license"
)

var durationText = map[string]string{
	license.DurationMonth:   "one month",
	license.DurationQuarter: "one quarter",
	license.DurationYear:    "one year",
}

func main() {
	duration := license.DurationMonth
	if len(os.Args) > 1 {
		duration = os.Args[1]
	}

	expiration, err := license.ExpirationFor(duration, time.Now())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	key := license.GenerateKey(expiration)

	fmt.Println("\n=== Activation key ===")
	fmt.Println("Duration:  ", durationText[duration])
	fmt.Println("Expires on:", expiration)
	fmt.Printf("\nKey:\n%s\n\n", key)
}
