package recorder

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/john/ytchat/internal/message"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fileWriter manages a single JSONL file
type fileWriter struct {
	file          *os.File
	writer        *bufio.Writer
	bytesWritten  int64
	messageBuffer []message.Message
	platform      string
	channel       string
	filename      string
}

// Recorder buffers chat records and writes them to one JSONL file per
// channel, starting a new file once the current one reaches the size limit.
type Recorder struct {
	outputDir   string
	bufferSize  int
	rotateBytes int64
	log         zerolog.Logger
	now         func() time.Time

	currentFiles map[string]*fileWriter // key: "platform_channel"
	sequence     map[string]int
	written      []string
	mu           sync.Mutex
}

// New creates a new recorder
func New(outputDir string, bufferSize, rotateMegabytes int, log zerolog.Logger) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Recorder{
		outputDir:    outputDir,
		bufferSize:   bufferSize,
		rotateBytes:  int64(rotateMegabytes) * 1024 * 1024,
		log:          log.With().Str("component", "recorder").Logger(),
		now:          time.Now,
		currentFiles: make(map[string]*fileWriter),
		sequence:     make(map[string]int),
	}
}

// Record queues a record, flushing the channel's buffer once it is full.
func (r *Recorder) Record(msg message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s_%s", msg.Platform, msg.Channel)
	fw := r.currentFiles[key]

	if fw == nil {
		var err error
		fw, err = r.createFileWriter(key, msg.Platform, msg.Channel)
		if err != nil {
			return fmt.Errorf("create file writer: %w", err)
		}
		r.currentFiles[key] = fw
	}

	fw.messageBuffer = append(fw.messageBuffer, msg)
	if len(fw.messageBuffer) < r.bufferSize {
		return nil
	}
	if err := r.flushFileWriter(fw); err != nil {
		return fmt.Errorf("flush buffer: %w", err)
	}
	if r.rotateBytes > 0 && fw.bytesWritten >= r.rotateBytes {
		r.log.Info().Str("file", fw.filename).Int64("bytes", fw.bytesWritten).Msg("Rotating file (size limit)")
		return r.rotateFile(key, fw)
	}
	return nil
}

func (r *Recorder) createFileWriter(key, platform, channel string) (*fileWriter, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	r.sequence[key]++
	timestamp := r.now().UTC().Format("20060102_1504")
	filename := fmt.Sprintf("%s_%s_%s_%03d.jsonl", platform, channel, timestamp, r.sequence[key])

	file, err := os.Create(filepath.Join(r.outputDir, filename))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	r.log.Debug().Str("file", filename).Msg("Created new log file")

	return &fileWriter{
		file:          file,
		writer:        bufio.NewWriter(file),
		messageBuffer: make([]message.Message, 0, r.bufferSize),
		platform:      platform,
		channel:       channel,
		filename:      filename,
	}, nil
}

// flushFileWriter writes buffered records to disk
func (r *Recorder) flushFileWriter(fw *fileWriter) error {
	for _, msg := range fw.messageBuffer {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}

		n, err := fw.writer.Write(data)
		if err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		fw.bytesWritten += int64(n)

		if err := fw.writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
		fw.bytesWritten++
	}

	fw.messageBuffer = fw.messageBuffer[:0]
	return fw.writer.Flush()
}

func (r *Recorder) closeFileWriter(fw *fileWriter) error {
	if err := r.flushFileWriter(fw); err != nil {
		fw.file.Close()
		return err
	}
	if err := fw.file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	r.written = append(r.written, filepath.Join(r.outputDir, fw.filename))
	return nil
}

// rotateFile closes the current file. The next record for the channel opens
// the following file in sequence.
func (r *Recorder) rotateFile(key string, fw *fileWriter) error {
	delete(r.currentFiles, key)
	if err := r.closeFileWriter(fw); err != nil {
		return fmt.Errorf("rotate %s: %w", fw.filename, err)
	}
	return nil
}

// Close flushes and closes every open file and returns the paths of all
// files written, in the order they were finished.
func (r *Recorder) Close() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for key, fw := range r.currentFiles {
		if err := r.closeFileWriter(fw); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", fw.filename, err)
		}
		delete(r.currentFiles, key)
	}

	r.log.Debug().Int("files", len(r.written)).Msg("All files flushed and closed")
	return r.written, firstErr
}
