package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// downloadConcurrency bounds parallel chunk fetches per blob download.
const downloadConcurrency = 2

// ErrNoAzureCredentials is returned when no usable credential source is
// configured for the Azure backend.
var ErrNoAzureCredentials = errors.New(
	"no Azure Blob credentials: set AZURE_STORAGE_CONNECTION_STRING, " +
		"AZURE_STORAGE_ACCOUNT + AZURE_STORAGE_KEY, or " +
		"AZURE_STORAGE_ACCOUNT + AZURE_STORAGE_SAS_TOKEN")

// AzureCredentials carries the env-sourced settings for building an Azure
// Blob service client. Sources are tried in order: connection string, then
// account + key, then account + SAS token.
type AzureCredentials struct {
	ConnectionString string
	Account          string
	AccountURL       string
	Key              string
	SASToken         string
}

// accountURL resolves the service endpoint, deriving the default public
// endpoint from the account name when no explicit URL is configured.
func (c AzureCredentials) accountURL() string {
	if u := strings.TrimSpace(c.AccountURL); u != "" {
		return u
	}
	if a := strings.TrimSpace(c.Account); a != "" {
		return fmt.Sprintf("https://%s.blob.core.windows.net", a)
	}
	return ""
}

// NewAzureClient builds an Azure Blob service client from the first fully
// present credential source. Construction fails fast so a misconfigured
// deployment dies at startup rather than mid-operation.
func NewAzureClient(creds AzureCredentials) (*azblob.Client, error) {
	if cs := strings.TrimSpace(creds.ConnectionString); cs != "" {
		client, err := azblob.NewClientFromConnectionString(cs, nil)
		if err != nil {
			return nil, fmt.Errorf("azure client from connection string: %w", err)
		}
		return client, nil
	}

	endpoint := creds.accountURL()
	if endpoint != "" && creds.Key != "" {
		cred, err := azblob.NewSharedKeyCredential(creds.Account, creds.Key)
		if err != nil {
			return nil, fmt.Errorf("azure shared key credential: %w", err)
		}
		client, err := azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("azure client with shared key: %w", err)
		}
		return client, nil
	}
	if endpoint != "" && creds.SASToken != "" {
		withSAS, err := appendSASToken(endpoint, creds.SASToken)
		if err != nil {
			return nil, err
		}
		client, err := azblob.NewClientWithNoCredential(withSAS, nil)
		if err != nil {
			return nil, fmt.Errorf("azure client with SAS: %w", err)
		}
		return client, nil
	}

	return nil, ErrNoAzureCredentials
}

func appendSASToken(endpoint, sas string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse account URL: %w", err)
	}
	sas = strings.TrimPrefix(strings.TrimSpace(sas), "?")
	if u.RawQuery != "" {
		u.RawQuery = u.RawQuery + "&" + sas
	} else {
		u.RawQuery = sas
	}
	return u.String(), nil
}

// blobAPI is the container-scoped surface the Azure backend needs. Narrowed
// from *azblob.Client so tests can substitute an in-memory store.
type blobAPI interface {
	Download(ctx context.Context, key string, dst *os.File) error
	Upload(ctx context.Context, key, srcPath, contentType string) error
	Stat(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// azureContainer adapts *azblob.Client to blobAPI for one container.
type azureContainer struct {
	client    *azblob.Client
	container string
}

var _ blobAPI = (*azureContainer)(nil)

func newAzureContainer(client *azblob.Client, container string) *azureContainer {
	return &azureContainer{client: client, container: container}
}

func (a *azureContainer) Download(ctx context.Context, key string, dst *os.File) error {
	_, err := a.client.DownloadFile(ctx, a.container, key, dst, &azblob.DownloadFileOptions{
		Concurrency: downloadConcurrency,
	})
	if err != nil {
		return fmt.Errorf("download blob %q: %w", key, err)
	}
	return nil
}

func (a *azureContainer) Upload(ctx context.Context, key, srcPath, contentType string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	// UploadFile overwrites any existing blob at the key.
	_, err = a.client.UploadFile(ctx, a.container, key, f, &azblob.UploadFileOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(contentType),
		},
	})
	if err != nil {
		return fmt.Errorf("upload blob %q: %w", key, err)
	}
	return nil
}

func (a *azureContainer) Stat(ctx context.Context, key string) error {
	bc := a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(key)
	_, err := bc.GetProperties(ctx, nil)
	return err
}

func (a *azureContainer) List(ctx context.Context, prefix string) ([]string, error) {
	opts := &azblob.ListBlobsFlatOptions{}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	pager := a.client.NewListBlobsFlatPager(a.container, opts)

	var keys []string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			keys = append(keys, *item.Name)
		}
	}
	return keys, nil
}

func (a *azureContainer) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteBlob(ctx, a.container, key, nil)
	return err
}
