package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/orbitalsec/astrarisk/pkg/assessment"
	"github.com/orbitalsec/astrarisk/pkg/catalog"
	"github.com/orbitalsec/astrarisk/pkg/export"
)

func main() {
	var (
		descFile   = flag.String("description", "", "file with the mission description (default: stdin)")
		sessionDir = flag.String("sessions", "", "save the preliminary assessment as a session in this directory")
		mission    = flag.String("mission", "", "mission name for the saved session")
		outDir     = flag.String("out", "", "write the preliminary risk table as CSV under this directory")
	)
	flag.Parse()

	description, err := readDescription(*descFile)
	if err != nil {
		log.Fatalf("Failed to read mission description: %v", err)
	}

	missionType, score := catalog.InferMissionType(description)
	context := catalog.ContextFor(missionType)
	entries := catalog.PreliminaryAssessment(missionType)

	fmt.Printf("Mission type: %s (match score %d)\n\n", missionType, score)
	fmt.Printf("Key assets:         %s\n", context.KeyAssets)
	fmt.Printf("Critical functions: %s\n", context.CriticalFunctions)
	fmt.Printf("Typical threats:    %s\n\n", context.TypicalThreats)

	fmt.Printf("%-45s %-10s %-10s %-10s\n", "THREAT", "Likelihood", "Impact", "Risk")
	fmt.Println(strings.Repeat("-", 80))
	for _, entry := range entries {
		fmt.Printf("%-45s %-10s %-10s %-10s\n",
			entry.Threat, entry.Likelihood, entry.Impact, entry.Risk)
	}

	if *sessionDir == "" && *outDir == "" {
		return
	}

	name := *mission
	if name == "" {
		name = string(missionType) + " mission"
	}

	session := assessment.NewSession(name)
	session.MissionType = missionType
	for _, entry := range entries {
		session.AddThreat(assessment.ThreatEntry{
			Name:       entry.Threat,
			Likelihood: entry.Likelihood,
			Impact:     entry.Impact,
			Risk:       entry.Risk,
		})
	}

	if *sessionDir != "" {
		store, err := assessment.NewStore(*sessionDir)
		if err != nil {
			log.Fatalf("Failed to open session store: %v", err)
		}
		fileName := sessionFileName(name)
		if err := store.Save(session, fileName); err != nil {
			log.Fatalf("Failed to save session: %v", err)
		}
		fmt.Printf("\nSession saved as %s\n", fileName)
	}

	if *outDir != "" {
		exporter, err := export.New(*outDir)
		if err != nil {
			log.Fatalf("Failed to create export directory: %v", err)
		}
		if err := exporter.ExportSession(session); err != nil {
			log.Fatalf("Failed to export risk table: %v", err)
		}
		fmt.Printf("\nRisk table written to %s\n", exporter.Dir())
	}
}

func sessionFileName(mission string) string {
	name := strings.ToLower(mission)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name + ".json"
}

func readDescription(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
