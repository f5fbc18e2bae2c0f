package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"studyquiz"
)

func main() {
	var (
		inputFile    = flag.String("input", "", "Material file (.txt, .pdf, .ppt, .pptx); stdin when omitted")
		numQuestions = flag.Int("questions", 5, "Number of questions to generate (1-10)")
		strategy     = flag.String("strategy", "local", "Generation strategy (templated, local, remote)")
		apiKey       = flag.String("api-key", "", "Generation service API key (or set OPENAI_API_KEY)")
		seed         = flag.Int64("seed", 0, "Random seed for reproducible quizzes (0 = time-based)")
		outputFile   = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		playMode     = flag.Bool("play", false, "Take the quiz interactively instead of printing JSON")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	studyquiz.SetVerbose(*verbose)

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}

	req, err := readMaterial(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read material: %v", err)
	}
	req.NumQuestions = *numQuestions

	engine := studyquiz.NewEngine(studyquiz.Config{
		Strategy: studyquiz.Strategy(*strategy),
		APIKey:   *apiKey,
		Seed:     *seed,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	quiz, err := engine.Generate(ctx, req)
	if err != nil {
		if msg := studyquiz.UserMessage(err); msg != "" {
			log.Fatal(msg)
		}
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	if *playMode {
		playQuiz(quiz)
		return
	}

	output, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}

// readMaterial loads pasted-style text or document bytes depending on
// the file extension. Document extensions are passed through so the
// engine's extractor handles them.
func readMaterial(path string) (studyquiz.GenerationRequest, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return studyquiz.GenerationRequest{}, fmt.Errorf("read stdin: %w", err)
		}
		return studyquiz.GenerationRequest{PastedText: string(data)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return studyquiz.GenerationRequest{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".ppt", ".pptx":
		return studyquiz.GenerationRequest{Filename: filepath.Base(path), FileData: data}, nil
	default:
		return studyquiz.GenerationRequest{PastedText: string(data)}, nil
	}
}

func playQuiz(quiz *studyquiz.Quiz) {
	fmt.Printf("Quiz ready: %d questions. Answer with 1-4, or press Enter to skip.\n\n", len(quiz.Questions))

	scanner := bufio.NewScanner(os.Stdin)
	submitted := make(map[int]string, len(quiz.Questions))

	for i, q := range quiz.Questions {
		fmt.Printf("Question %d/%d:\n%s\n\n", i+1, len(quiz.Questions), q.Prompt)
		for j, choice := range q.Choices {
			fmt.Printf("  %d) %s\n", j+1, choice)
		}
		fmt.Print("\nYour answer: ")
		scanner.Scan()
		answer := strings.TrimSpace(scanner.Text())

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Choices) {
			submitted[i] = strconv.Itoa(n - 1)
		}
		fmt.Println()
	}

	result := studyquiz.Grade(quiz, submitted)

	fmt.Println(strings.Repeat("-", 40))
	for i, q := range quiz.Questions {
		mark := "✗"
		if result.UserAnswers[i] == q.CorrectChoice {
			mark = "✓"
		}
		fmt.Printf("%s Question %d: correct answer was %d) %s\n",
			mark, i+1, q.CorrectChoice+1, q.Choices[q.CorrectChoice])
	}
	fmt.Printf("\nFinal score: %d/%d (%d%%)\n", result.CorrectCount, result.Total, result.ScorePercent)
}
