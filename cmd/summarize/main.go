package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/SwayamChandak/accuraTraveller/config"
	"github.com/SwayamChandak/accuraTraveller/summarizer"
)

func main() {
	attractionsFile := flag.String("attractions", "", "Scraped attractions page JSON file")
	hotelsFile := flag.String("hotels", "", "Scraped hotel pages JSON file (array)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	model := flag.String("model", "", "Ollama model to use (overrides config)")
	output := flag.String("output", "summary.txt", "Output text file")
	flag.Parse()

	if *attractionsFile == "" && *hotelsFile == "" {
		log.Fatal("Usage: summarize [-attractions file.json] [-hotels file.json] [-model name] [-output file.txt]")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Using default configuration (%v)\n", err)
		cfg = config.GetDefaultConfig()
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}

	client := summarizer.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model)
	log.Printf("Using Ollama model: %s\n", cfg.LLM.Model)

	prompt, err := buildPrompt(*attractionsFile, *hotelsFile)
	if err != nil {
		log.Fatalf("Failed to prepare input: %v\n", err)
	}

	log.Println("Generating summary, this may take a moment...")
	summary, err := client.Generate(context.Background(), prompt)
	if err != nil {
		log.Fatalf("Summary generation failed: %v\nMake sure Ollama is running and the model is pulled (ollama pull %s)\n", err, cfg.LLM.Model)
	}

	fmt.Println(summary)
	if err := summarizer.SaveSummary(summary, *output); err != nil {
		log.Fatalf("Failed to save summary: %v\n", err)
	}
}

// buildPrompt picks the prompt type from which input files were given:
// attractions only, hotels only, or a combined travel guide.
func buildPrompt(attractionsFile, hotelsFile string) (string, error) {
	switch {
	case attractionsFile != "" && hotelsFile != "":
		attractions, err := summarizer.LoadPage(attractionsFile)
		if err != nil {
			return "", err
		}
		hotels, err := summarizer.LoadPages(hotelsFile)
		if err != nil {
			return "", err
		}
		return summarizer.TravelGuidePrompt(attractions, hotels), nil
	case attractionsFile != "":
		attractions, err := summarizer.LoadPage(attractionsFile)
		if err != nil {
			return "", err
		}
		return summarizer.AttractionsPrompt(attractions), nil
	default:
		hotels, err := summarizer.LoadPages(hotelsFile)
		if err != nil {
			return "", err
		}
		return summarizer.HotelsPrompt(hotels), nil
	}
}
