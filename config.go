package clip_saver

import (
	"strings"
	"text/template"
)

const (
	DefaultVideoFilename = "{{.Username}}_video.mp4"
	DefaultAudioFilename = "{{.Username}}_audio.mp3"
	DefaultSlideFilename = "{{.Username}}_slide_{{.Index}}.jpg"
)

// FilenameConfig decides what downloaded media is called.
type FilenameConfig struct {
	VideoTemplate *template.Template
	AudioTemplate *template.Template
	SlideTemplate *template.Template
}

func NewFilenameConfig() FilenameConfig {
	return FilenameConfig{
		VideoTemplate: template.Must(ParseFilenameTemplate("video", DefaultVideoFilename)),
		AudioTemplate: template.Must(ParseFilenameTemplate("audio", DefaultAudioFilename)),
		SlideTemplate: template.Must(ParseFilenameTemplate("slide", DefaultSlideFilename)),
	}
}

// ParseFilenameTemplate parses a template that can refer to {{.Username}} and {{.Index}}.
func ParseFilenameTemplate(name string, text string) (*template.Template, error) {
	return template.New(name).Option("missingkey=error").Parse(text)
}

func (c FilenameConfig) VideoFilename(username string) (string, error) {
	return execute(c.VideoTemplate, filenameTemplateArgs{Username: username})
}

func (c FilenameConfig) AudioFilename(username string) (string, error) {
	return execute(c.AudioTemplate, filenameTemplateArgs{Username: username})
}

// SlideFilename names the slide at a 1-based position.
func (c FilenameConfig) SlideFilename(username string, position int) (string, error) {
	return execute(c.SlideTemplate, filenameTemplateArgs{Username: username, Index: position})
}

// SlideFilenames names every slide of an n-slide post, with 1-based positions.
func (c FilenameConfig) SlideFilenames(username string, n int) ([]string, error) {
	filenames := make([]string, n)
	for i := range filenames {
		filename, err := c.SlideFilename(username, i+1)
		if err != nil {
			return nil, err
		}
		filenames[i] = filename
	}
	return filenames, nil
}

type filenameTemplateArgs struct {
	Username string
	Index    int
}

func execute(t *template.Template, args filenameTemplateArgs) (string, error) {
	if args.Username == "" {
		args.Username = DefaultUsername
	}
	builder := strings.Builder{}
	if err := t.Execute(&builder, &args); err != nil {
		return "", err
	}
	return builder.String(), nil
}
