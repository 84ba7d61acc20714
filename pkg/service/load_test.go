package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDefinition = `
service: photo-api

provider:
  name: aws
  runtime: go1.x
  stage: prod
  region: eu-west-1
  memorySize: 512

plugins:
  - serverless-offline
  - serverless-prune

custom:
  bucket: photos

functions:
  upload:
    handler: bin/upload
    memorySize: 256
    timeout: 30
    events:
      - http:
          path: /photos
          method: post
      - s3: photos
  resize:
    handler: bin/resize
    events:
      - s3: photos
  cleanup:
    handler: bin/cleanup

resources:
  Resources:
    PhotosBucket:
      Type: AWS::S3::Bucket
  Outputs:
    BucketName:
      Value: photos
`

func TestParse(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(sampleDefinition))
	require.NoError(t, err)

	assert.Equal(t, "photo-api", config.Service)
	assert.Equal(t, "aws", config.Provider.Name)
	assert.Equal(t, "go1.x", config.Provider.Runtime)
	assert.Equal(t, "prod", config.Provider.Stage)
	assert.Equal(t, "eu-west-1", config.Provider.Region)
	assert.Len(t, config.Plugins, 2)
	assert.Contains(t, config.Custom, "bucket")
	require.NotNil(t, config.Resources)
	assert.Len(t, config.Resources.Resources, 1)
	assert.Len(t, config.Resources.Outputs, 1)
}

func TestParse_FunctionOrderPreserved(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(sampleDefinition))
	require.NoError(t, err)

	require.Len(t, config.Functions, 3)
	assert.Equal(t, "upload", config.Functions[0].Name)
	assert.Equal(t, "resize", config.Functions[1].Name)
	assert.Equal(t, "cleanup", config.Functions[2].Name)
}

func TestParse_EventBindings(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(sampleDefinition))
	require.NoError(t, err)

	upload := config.Functions[0]
	require.Len(t, upload.Events, 2)
	assert.Equal(t, "http", upload.Events[0].Type())
	assert.Equal(t, "s3", upload.Events[1].Type())

	descriptor, ok := upload.Events[0].Descriptor().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/photos", descriptor["path"])

	cleanup := config.Functions[2]
	assert.Empty(t, cleanup.Events)
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte("service: bare\nprovider:\n  name: aws\n"))
	require.NoError(t, err)

	assert.Empty(t, config.Functions)
	assert.Nil(t, config.Resources)
	assert.Empty(t, config.Plugins)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "serverless.yml"), []byte(sampleDefinition), 0o644))

	config, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "photo-api", config.Service)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestProviderDefaults(t *testing.T) {
	t.Parallel()

	p := Provider{}
	assert.Equal(t, "dev", p.StageOrDefault())
	assert.Equal(t, "us-east-1", p.RegionOrDefault())

	p = Provider{Stage: "qa", Region: "ap-south-1"}
	assert.Equal(t, "qa", p.StageOrDefault())
	assert.Equal(t, "ap-south-1", p.RegionOrDefault())
}
