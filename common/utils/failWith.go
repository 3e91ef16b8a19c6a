package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/ttacon/chalk"
)

func FailWith(err error) {
	fmt.Print(chalk.Red)
	fmt.Println("\n✘ " + strings.Join(os.Args, " "))
	fmt.Println("  " + err.Error())
	fmt.Print(chalk.Reset)

	os.Exit(1)
}

func WarnWith(err error) {
	fmt.Print(chalk.Yellow)
	fmt.Println("⚠ " + err.Error())
	fmt.Print(chalk.Reset)
}
