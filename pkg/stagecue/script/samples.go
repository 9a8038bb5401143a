package script

import "github.com/himanishpuri/StageCue/pkg/stagecue/guidance"

// Sample is a built-in monologue for trying the tool out.
type Sample struct {
	Title   string
	Text    string
	Context guidance.CharacterContext
}

var samples = []Sample{
	{
		Title: "Hamlet",
		Context: guidance.CharacterContext{
			Origin: "Revelation", Destination: "Understanding", Intent: "Confess", Motivation: "Fear",
		},
		Text: `To be, or not to be, that is the question.
Whether 'tis nobler in the mind to suffer the slings and arrows of outrageous fortune.
Or to take arms against a sea of troubles, and by opposing end them.
To die — to sleep, no more.
And by a sleep to say we end the heart-ache and the thousand natural shocks that flesh is heir to.
'Tis a consummation devoutly to be wish'd.
To die, to sleep.
To sleep, perchance to dream — ay, there's the rub.
For in that sleep of death what dreams may come, when we have shuffled off this mortal coil, must give us pause.
There's the respect that makes calamity of so long life.`,
	},
	{
		Title: "Frankenstein",
		Context: guidance.CharacterContext{
			Origin: "Confession", Destination: "Understanding", Intent: "Confess", Motivation: "Redemption",
		},
		Text: `I collected the instruments of life around me, that I might infuse a spark of being into the lifeless thing that lay at my feet.
It was already one in the morning; the rain pattered dismally against the panes, and my candle was nearly burnt out.
How can I describe my emotions at this catastrophe, or how delineate the wretch whom with such infinite pains and care I had endeavoured to form?
His limbs were in proportion, and I had selected his features as beautiful.
Beautiful! Great God!
His yellow skin scarcely covered the work of muscles and arteries beneath.`,
	},
	{
		Title: "Scent Of A Woman",
		Context: guidance.CharacterContext{
			Origin: "Accusation", Destination: "Justice", Intent: "Persuade", Motivation: "Desperation",
		},
		Text: `I don't know if Charlie's silence here today is right or wrong.
I'm not a judge or jury.
But I can tell you this: he won't sell anybody out to buy his future!!
And that, my friends, is called integrity. That's called courage.
Now that's the stuff leaders should be made of.
I have come to the crossroads in my life.
I always knew what the right path was. Without exception, I knew.
But I never took it.
You know why? It was too damn hard.`,
	},
	{
		Title: "The Devil's Advocate",
		Context: guidance.CharacterContext{
			Origin: "Revelation", Destination: "Manipulation", Intent: "Persuade", Motivation: "Power/Control",
		},
		Text: `Let me give you a little inside information about God.
God likes to watch. He's a prankster.
Think about it. He gives man instincts.
He gives you this extraordinary gift, and then what does He do?
I swear, for His own amusement, his own private, cosmic gag reel, He sets the rules in opposition.
It's the goof of all time. You look, but don't touch. Touch, but don't taste. Taste, but don't swallow.
And while you're jumping from one foot to the next, what is He doing?
He's laughing his sick, fucking ass off!
He's a tight-ass! He's a sadist!`,
	},
	{
		Title: "Othello",
		Context: guidance.CharacterContext{
			Origin: "Accusation", Destination: "Justice", Intent: "Threaten", Motivation: "Desperation",
		},
		Text: `It is the cause, it is the cause, my soul,—
Let me not name it to you, you chaste stars!—
It is the cause. Yet I'll not shed her blood;
Nor scar that whiter skin of hers than snow,
And smooth as monumental alabaster.
Yet she must die, else she'll betray more men.
Put out the light, and then put out the light.`,
	},
}

// Samples returns the built-in monologues.
func Samples() []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	return out
}
