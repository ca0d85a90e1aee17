package main

import "github.com/rxtech-lab/b3-extractor/internal/pipeline"

// FetchStatusMsg carries a progress line from the fetch worker.
type FetchStatusMsg struct {
	Text string
}

// FetchDoneMsg signals that the fetch worker finished, successfully or not.
type FetchDoneMsg struct {
	Result pipeline.Result
	Err    error
}

// FolderOpenedMsg reports the outcome of opening the output folder.
type FolderOpenedMsg struct {
	Err error
}
