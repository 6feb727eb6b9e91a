package main

import (
	"fmt"
	"os"

	"github.com/WRH-05/polymaze/config"
	"github.com/WRH-05/polymaze/logger"
	"github.com/WRH-05/polymaze/mouse"
	"github.com/WRH-05/polymaze/sim"
)

// Global variables for dependencies
var (
	appLogger   *logger.Logger
	mouseLogger *logger.Logger
	driver      *sim.Client
	navigator   *mouse.Navigator
)

// All logging goes to stderr: stdout carries the simulator protocol.
func initLoggers() {
	var err error
	appLogger, err = logger.New("APP", config.ColorCyan, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	mouseLogger, err = logger.New("MOUSE", config.ColorBlue, os.Stderr)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating mouse logger: %v", err))
		os.Exit(1)
	}
	mouseLogger.EnableDebug(config.Envs.Debug)
}

func initDriver() {
	driver = sim.NewClient(os.Stdin, os.Stdout)
	appLogger.Info("Simulator driver initialized")
}

func initNavigator() {
	var err error
	navigator, err = mouse.New(driver, mouseLogger, config.Envs.MaxSteps)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating navigator: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Navigator initialized")
}

func main() {
	initLoggers()
	initDriver()
	initNavigator()

	if err := navigator.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Navigation run failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Navigation run complete")
}
