// Package artifacts locates build outputs and copies them into the artifact tree.
package artifacts

import (
	"crypto/md5" //nolint:gosec // checksum format is fixed by downstream consumers
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/klauspost/compress/zip"
	"github.com/otiai10/copy"
	"go.trai.ch/zerr"
	"go.trai.ch/zsb/internal/core/domain"
)

// preLinkELFs are intermediate images never reported as the build binary.
var preLinkELFs = []string{"zephyr_pre0.elf", "zephyr_pre1.elf"}

// spdxOutputs are the SBOM documents the SPDX step may emit, in reporting order.
var spdxOutputs = []string{domain.OutputSPDXApp, domain.OutputSPDXBuild, domain.OutputSPDXZephyr}

// Extractor implements ports.ArtifactExtractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Locate reports the well-known outputs present under buildDir.
// Boards that rename the binary are covered by falling back to the first ELF
// in lexical order that is not a pre-link image.
func (e *Extractor) Locate(buildDir string) domain.BuildOutputs {
	out := domain.BuildOutputs{
		ELF:    existing(filepath.Join(buildDir, domain.OutputELF)),
		DTS:    existing(filepath.Join(buildDir, domain.OutputDTS)),
		Config: existing(filepath.Join(buildDir, domain.OutputConfig)),
	}
	if out.ELF == "" {
		out.ELF = fallbackELF(buildDir)
	}
	for _, rel := range spdxOutputs {
		if p := existing(filepath.Join(buildDir, rel)); p != "" {
			out.SPDX = append(out.SPDX, p)
		}
	}
	return out
}

func fallbackELF(buildDir string) string {
	matches, err := doublestar.Glob(filepath.Join(buildDir, "**", "*.elf"))
	if err != nil {
		return ""
	}
	slices.Sort(matches)
	for _, m := range matches {
		if !slices.Contains(preLinkELFs, filepath.Base(m)) {
			return m
		}
	}
	return ""
}

// Collect copies the planned outputs into plan.DestDir under sample-based names.
// On success it also writes the binary checksum and the SBOM archive.
func (e *Extractor) Collect(plan domain.ArtifactPlan) (domain.CollectedArtifacts, error) {
	var collected domain.CollectedArtifacts

	if err := os.MkdirAll(plan.DestDir, domain.DirPerm); err != nil {
		return collected, zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "path", plan.DestDir)
	}

	dest := func(suffix string) string {
		return filepath.Join(plan.DestDir, plan.Sample+suffix)
	}

	var err error
	if collected.Log, err = copyFile(plan.LogPath, dest(".log")); err != nil {
		return collected, err
	}
	if collected.ELF, err = copyFile(plan.Outputs.ELF, dest(".elf")); err != nil {
		return collected, err
	}
	if collected.DTS, err = copyFile(plan.Outputs.DTS, dest(".dts")); err != nil {
		return collected, err
	}
	if collected.OriginalDTS, err = copyFile(plan.OriginalDTS, dest(".dts.orig")); err != nil {
		return collected, err
	}
	if collected.Config, err = copyFile(plan.Outputs.Config, dest("-config")); err != nil {
		return collected, err
	}
	for _, spdx := range plan.Outputs.SPDX {
		copied, err := copyFile(spdx, dest("-"+filepath.Base(spdx)))
		if err != nil {
			return collected, err
		}
		collected.SPDX = append(collected.SPDX, copied)
	}

	if !plan.Success {
		return collected, nil
	}

	if collected.ELF == "" {
		return collected, zerr.With(domain.ErrMissingArtifact, "artifact", domain.OutputELF)
	}
	if err := writeChecksum(collected.ELF, plan.MD5Path); err != nil {
		return collected, err
	}
	collected.MD5 = plan.MD5Path

	if err := writeArchive(plan.ZipPath, plan.Board, collected.SPDX); err != nil {
		return collected, err
	}
	collected.Zip = plan.ZipPath

	return collected, nil
}

// copyFile copies src to dst. An empty src is skipped and yields an empty path.
func copyFile(src, dst string) (string, error) {
	if src == "" {
		return "", nil
	}
	if err := copy.Copy(src, dst); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "src", src)
		return "", zerr.With(err, "dst", dst)
	}
	return dst, nil
}

func writeChecksum(elfPath, md5Path string) error {
	sum, err := fileMD5(elfPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumFailed.Error()), "path", elfPath)
	}
	if err := os.MkdirAll(filepath.Dir(md5Path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumFailed.Error()), "path", md5Path)
	}
	if err := os.WriteFile(md5Path, []byte(sum), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChecksumFailed.Error()), "path", md5Path)
	}
	return nil
}

func fileMD5(path string) (string, error) {
	// #nosec G304 -- path is inside the artifact tree
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := md5.New() //nolint:gosec // see import
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeArchive deflates files into zipPath as {board}/{basename} entries.
func writeArchive(zipPath, board string, files []string) (err error) {
	if err := os.MkdirAll(filepath.Dir(zipPath), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveFailed.Error()), "path", zipPath)
	}

	// #nosec G304 -- path is inside the artifact tree
	out, err := os.Create(zipPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveFailed.Error()), "path", zipPath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = zerr.With(zerr.Wrap(cerr, domain.ErrArchiveFailed.Error()), "path", zipPath)
		}
	}()

	zw := zip.NewWriter(out)
	for _, file := range files {
		if err := addToArchive(zw, strings.Join([]string{board, filepath.Base(file)}, "/"), file); err != nil {
			_ = zw.Close()
			return zerr.With(zerr.Wrap(err, domain.ErrArchiveFailed.Error()), "path", zipPath)
		}
	}
	if err := zw.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveFailed.Error()), "path", zipPath)
	}
	return nil
}

func addToArchive(zw *zip.Writer, name, path string) error {
	// #nosec G304 -- path is inside the artifact tree
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func existing(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}
