package openai

import (
	"fmt"
	"strings"

	"github.com/bnema/clipr/internal/domain"
)

const systemPrompt = "You are a precise transcript analyzer. You ONLY describe what is literally said in the transcript. " +
	"You never invent, imagine, or embellish content. Your descriptions must be factually accurate based solely on the actual words in the transcript."

func buildPrompt(segments []domain.Segment, criteria []domain.Criterion, c domain.ClipConstraints) string {
	var transcript strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&transcript, "[%s - %s] %s\n", domain.FormatTimestamp(s.Start), domain.FormatTimestamp(s.End), s.Text)
	}

	blocks := make([]string, 0, len(criteria))
	for _, cr := range criteria {
		blocks = append(blocks, "## "+strings.ToUpper(cr.Name)+"\n"+cr.Content)
	}

	lo, hi := formatSeconds(c.MinDuration), formatSeconds(c.MaxDuration)

	var b strings.Builder
	b.WriteString("You are an expert at identifying viral-worthy video segments for short-form platforms such as TikTok, Instagram Reels and YouTube Shorts.\n\n")
	b.WriteString("Analyze the following video transcript and identify the segments with the highest potential to go viral.\n\n")
	b.WriteString("# VIRAL CRITERIA\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n# VIDEO TRANSCRIPT\n\n")
	b.WriteString(transcript.String())
	b.WriteString("\n# TASK\n\n")
	b.WriteString("For each potential viral clip:\n")
	b.WriteString("1. Identify the START and END timestamps from the transcript\n")
	b.WriteString("2. Score the viral potential (1-10)\n")
	b.WriteString("3. List which criteria it matches (can be several)\n")
	b.WriteString("4. Explain why it would be viral based only on what is actually said\n")
	fmt.Fprintf(&b, "5. Aim for a duration of %s-%s seconds\n\n", lo, hi)
	b.WriteString("CRITICAL REQUIREMENTS:\n")
	b.WriteString("- Only analyze content that is actually in the transcript. Do not make up content\n")
	b.WriteString("- The reasoning must include direct quotes from the transcript\n")
	b.WriteString("- Provide a \"key_quote\" field with an exact quote from the segment\n")
	fmt.Fprintf(&b, "- Each clip must be between %s and %s seconds long\n", lo, hi)
	b.WriteString("- Clips must make sense without surrounding context\n")
	b.WriteString("- Use the exact timestamps from the transcript\n")
	fmt.Fprintf(&b, "- Return up to %d clips\n", c.MaxClips)
	fmt.Fprintf(&b, "- Only include clips with a viral score >= %s\n", formatSeconds(c.MinScore))
	b.WriteString("- suggested_title and reasoning must reflect what is actually said in those timestamps\n")
	b.WriteString("- If you cannot find an exact quote for a clip, leave the clip out\n\n")
	b.WriteString(`Return a JSON object with a "clips" array using exactly this structure:
{
  "clips": [
    {
      "start_time": "MM:SS",
      "end_time": "MM:SS",
      "start_seconds": 0,
      "end_seconds": 0,
      "viral_score": 8.5,
      "criteria_matched": ["viral_hooks"],
      "reasoning": "Why this works, quoting the transcript",
      "suggested_title": "Title that reflects the actual content",
      "key_quote": "An exact quote from the segment"
    }
  ]
}

Return ONLY the JSON object, no additional text.
`)
	return b.String()
}

func formatSeconds(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
